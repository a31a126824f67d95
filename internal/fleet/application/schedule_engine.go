package application

import (
	"context"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
)

// ScheduleEngine mantém a lista de agendamentos consistente: campos válidos,
// referências existentes e nenhum ônibus ou motorista em duas janelas
// sobrepostas na mesma data.
type ScheduleEngine struct {
	schedules *Manager[domain.Schedule]
	routes    domain.Lookup
	buses     domain.Lookup
	drivers   domain.Lookup
	logger    pkgApp.AppLogger
}

func NewScheduleEngine(
	records []domain.Schedule,
	store domain.RecordStore[domain.Schedule],
	routes, buses, drivers domain.Lookup,
	logger pkgApp.AppLogger,
) *ScheduleEngine {
	schedules := NewManager("schedule", records, store, validateSchedule, func(s domain.Schedule, id string) domain.Schedule {
		s.ID = id
		return s
	}, logger)

	return &ScheduleEngine{
		schedules: schedules,
		routes:    routes,
		buses:     buses,
		drivers:   drivers,
		logger:    logger,
	}
}

func (e *ScheduleEngine) ValidateSchedule(s domain.Schedule) error {
	return validateSchedule(s)
}

// HasValidReferences devolve o *domain.ReferenceError da primeira referência
// ausente, na ordem rota, ônibus, motorista.
func (e *ScheduleEngine) HasValidReferences(s domain.Schedule) error {
	if !e.routes.Exists(s.RouteID) {
		return &domain.ReferenceError{Kind: "route", ID: s.RouteID}
	}
	if !e.buses.Exists(s.BusID) {
		return &domain.ReferenceError{Kind: "bus", ID: s.BusID}
	}
	if !e.drivers.Exists(s.DriverID) {
		return &domain.ReferenceError{Kind: "driver", ID: s.DriverID}
	}
	return nil
}

func (e *ScheduleEngine) HasBusOverlap(s domain.Schedule, excludeID string) bool {
	_, found := e.BusConflict(s, excludeID)
	return found
}

func (e *ScheduleEngine) HasDriverOverlap(s domain.Schedule, excludeID string) bool {
	_, found := e.DriverConflict(s, excludeID)
	return found
}

// BusConflict devolve o primeiro agendamento (exceto excludeID) que ocupa o
// mesmo ônibus numa janela sobreposta.
func (e *ScheduleEngine) BusConflict(s domain.Schedule, excludeID string) (domain.Schedule, bool) {
	return e.conflict(s, excludeID, func(existing domain.Schedule) bool {
		return existing.BusID == s.BusID
	})
}

func (e *ScheduleEngine) DriverConflict(s domain.Schedule, excludeID string) (domain.Schedule, bool) {
	return e.conflict(s, excludeID, func(existing domain.Schedule) bool {
		return existing.DriverID == s.DriverID
	})
}

func (e *ScheduleEngine) conflict(s domain.Schedule, excludeID string, sameResource func(domain.Schedule) bool) (domain.Schedule, bool) {
	for _, existing := range e.schedules.records {
		if existing.ID == excludeID {
			continue
		}
		if sameResource(existing) && existing.OverlapsWith(s) {
			return existing, true
		}
	}
	return domain.Schedule{}, false
}

func (e *ScheduleEngine) AddSchedule(ctx context.Context, s domain.Schedule) error {
	return e.schedules.Add(ctx, s, e.consistencyChecks("")...)
}

func (e *ScheduleEngine) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	return e.schedules.Update(ctx, id, s, e.consistencyChecks(id)...)
}

func (e *ScheduleEngine) RemoveSchedule(ctx context.Context, id string) error {
	return e.schedules.Remove(ctx, id)
}

func (e *ScheduleEngine) consistencyChecks(excludeID string) []CheckFunc[domain.Schedule] {
	return []CheckFunc[domain.Schedule]{
		e.HasValidReferences,
		func(s domain.Schedule) error {
			if existing, found := e.BusConflict(s, excludeID); found {
				return overlapError("bus", s.BusID, existing)
			}
			return nil
		},
		func(s domain.Schedule) error {
			if existing, found := e.DriverConflict(s, excludeID); found {
				return overlapError("driver", s.DriverID, existing)
			}
			return nil
		},
	}
}

func overlapError(resource, id string, existing domain.Schedule) *domain.OverlapError {
	return &domain.OverlapError{
		Resource:   resource,
		ID:         id,
		ScheduleID: existing.ID,
		Date:       existing.Date,
		Departure:  existing.DepartureTime,
		Arrival:    existing.ArrivalTime,
	}
}

func (e *ScheduleEngine) Find(id string) (*domain.Schedule, bool) {
	return e.schedules.Find(id)
}

func (e *ScheduleEngine) Exists(id string) bool {
	return e.schedules.Exists(id)
}

func (e *ScheduleEngine) All() []domain.Schedule {
	return e.schedules.All()
}

func (e *ScheduleEngine) SchedulesForDriver(driverID string) []domain.Schedule {
	return e.schedules.Filter(func(s domain.Schedule) bool { return s.DriverID == driverID })
}

func (e *ScheduleEngine) SchedulesForDate(date string) []domain.Schedule {
	return e.schedules.Filter(func(s domain.Schedule) bool { return s.Date == date })
}

func (e *ScheduleEngine) SchedulesForBus(busID string) []domain.Schedule {
	return e.schedules.Filter(func(s domain.Schedule) bool { return s.BusID == busID })
}

func (e *ScheduleEngine) SchedulesForRoute(routeID string) []domain.Schedule {
	return e.schedules.Filter(func(s domain.Schedule) bool { return s.RouteID == routeID })
}
