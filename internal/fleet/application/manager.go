package application

import (
	"context"
	"fmt"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
)

// CheckFunc é uma regra extra executada pelo Manager antes de gravar.
type CheckFunc[T any] func(rec T) error

// Manager mantém a coleção viva de um tipo de registro e reescreve o store
// inteiro a cada alteração bem-sucedida. Não é seguro para uso concorrente;
// quem precisa disso serializa o acesso (ver fleet.Fleet).
type Manager[T domain.Record] struct {
	entity   string
	records  []T
	store    domain.RecordStore[T]
	validate ValidateFunc[T]
	withKey  func(rec T, id string) T
	logger   pkgApp.AppLogger
}

func NewManager[T domain.Record](
	entity string,
	records []T,
	store domain.RecordStore[T],
	validate ValidateFunc[T],
	withKey func(rec T, id string) T,
	logger pkgApp.AppLogger,
) *Manager[T] {
	return &Manager[T]{
		entity:   entity,
		records:  append([]T(nil), records...),
		store:    store,
		validate: validate,
		withKey:  withKey,
		logger:   logger,
	}
}

func NewBusManager(records []domain.Bus, store domain.RecordStore[domain.Bus], logger pkgApp.AppLogger) *Manager[domain.Bus] {
	return NewManager("bus", records, store, validateBus, func(b domain.Bus, id string) domain.Bus {
		b.ID = id
		return b
	}, logger)
}

func NewDriverManager(records []domain.Driver, store domain.RecordStore[domain.Driver], logger pkgApp.AppLogger) *Manager[domain.Driver] {
	return NewManager("driver", records, store, validateDriver, func(d domain.Driver, id string) domain.Driver {
		d.ID = id
		return d
	}, logger)
}

func NewRouteManager(records []domain.Route, store domain.RecordStore[domain.Route], logger pkgApp.AppLogger) *Manager[domain.Route] {
	return NewManager("route", records, store, validateRoute, func(r domain.Route, id string) domain.Route {
		r.ID = id
		return r
	}, logger)
}

func (m *Manager[T]) Entity() string {
	return m.entity
}

func (m *Manager[T]) Validate(rec T) error {
	return m.validate(rec)
}

// Add valida, garante id único, aplica checks e grava.
func (m *Manager[T]) Add(ctx context.Context, rec T, checks ...CheckFunc[T]) error {
	if err := m.validate(rec); err != nil {
		m.reject(ctx, "add", rec.Key(), err)
		return err
	}

	if m.Exists(rec.Key()) {
		err := fmt.Errorf("%s %s: %w", m.entity, rec.Key(), domain.ErrDuplicateID)
		m.reject(ctx, "add", rec.Key(), err)
		return err
	}

	if err := runChecks(rec, checks); err != nil {
		m.reject(ctx, "add", rec.Key(), err)
		return err
	}

	m.records = append(m.records, rec)
	if err := m.persist(ctx); err != nil {
		m.records = m.records[:len(m.records)-1]
		return err
	}

	pkgApp.LogInfo(ctx, m.logger, m.entity+" added", map[string]interface{}{
		"id": rec.Key(),
	})
	return nil
}

// Update substitui o registro inteiro. Um id vazio em rec herda id; um id
// diferente é recusado.
func (m *Manager[T]) Update(ctx context.Context, id string, rec T, checks ...CheckFunc[T]) error {
	idx := m.indexOf(id)
	if idx < 0 {
		err := fmt.Errorf("%s %s: %w", m.entity, id, domain.ErrNotFound)
		m.reject(ctx, "update", id, err)
		return err
	}

	if rec.Key() == "" {
		rec = m.withKey(rec, id)
	}

	if err := m.validate(rec); err != nil {
		m.reject(ctx, "update", id, err)
		return err
	}

	if rec.Key() != id {
		err := &domain.ValidationError{
			Entity:  m.entity,
			Field:   "ID",
			Message: fmt.Sprintf("%s ID cannot be changed from %s to %s", m.entity, id, rec.Key()),
		}
		m.reject(ctx, "update", id, err)
		return err
	}

	if err := runChecks(rec, checks); err != nil {
		m.reject(ctx, "update", id, err)
		return err
	}

	previous := m.records[idx]
	m.records[idx] = rec
	if err := m.persist(ctx); err != nil {
		m.records[idx] = previous
		return err
	}

	pkgApp.LogInfo(ctx, m.logger, m.entity+" updated", map[string]interface{}{
		"id": id,
	})
	return nil
}

func (m *Manager[T]) Remove(ctx context.Context, id string) error {
	idx := m.indexOf(id)
	if idx < 0 {
		err := fmt.Errorf("%s %s: %w", m.entity, id, domain.ErrNotFound)
		m.reject(ctx, "remove", id, err)
		return err
	}

	previous := append([]T(nil), m.records...)
	m.records = append(m.records[:idx], m.records[idx+1:]...)
	if err := m.persist(ctx); err != nil {
		m.records = previous
		return err
	}

	pkgApp.LogInfo(ctx, m.logger, m.entity+" removed", map[string]interface{}{
		"id": id,
	})
	return nil
}

// Find devolve um ponteiro para o registro vivo; ele deixa de ser válido após
// qualquer alteração da coleção.
func (m *Manager[T]) Find(id string) (*T, bool) {
	idx := m.indexOf(id)
	if idx < 0 {
		return nil, false
	}
	return &m.records[idx], true
}

func (m *Manager[T]) Exists(id string) bool {
	return m.indexOf(id) >= 0
}

func (m *Manager[T]) All() []T {
	return append([]T(nil), m.records...)
}

// Filter devolve uma cópia dos registros aceitos por keep, na ordem de inserção.
func (m *Manager[T]) Filter(keep func(T) bool) []T {
	var out []T
	for _, rec := range m.records {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (m *Manager[T]) indexOf(id string) int {
	for i := range m.records {
		if m.records[i].Key() == id {
			return i
		}
	}
	return -1
}

func (m *Manager[T]) persist(ctx context.Context) error {
	if err := m.store.Save(ctx, m.records); err != nil {
		pkgApp.LogError(ctx, m.logger, "error saving "+m.entity+" records", err, map[string]interface{}{
			"count": len(m.records),
		})
		return fmt.Errorf("save %s records: %w", m.entity, err)
	}
	return nil
}

func (m *Manager[T]) reject(ctx context.Context, op, id string, err error) {
	pkgApp.LogDebug(ctx, m.logger, m.entity+" "+op+" rejected", map[string]interface{}{
		"id":     id,
		"reason": err.Error(),
	})
}

func runChecks[T any](rec T, checks []CheckFunc[T]) error {
	for _, check := range checks {
		if err := check(rec); err != nil {
			return err
		}
	}
	return nil
}
