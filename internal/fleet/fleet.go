package fleet

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	"github.com/mateusmacedo/go-fleet/internal/fleet/infrastructure"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
)

type ReferentialPolicy string

const (
	// PolicyAllow remove o registro mesmo que agendamentos ainda o referenciem.
	PolicyAllow ReferentialPolicy = "allow"
	// PolicyBlock recusa a remoção com *domain.InUseError.
	PolicyBlock ReferentialPolicy = "block"
)

type (
	ScheduleCommandBus = pkgApp.CommandBus[application.ScheduleCommand, application.ScheduleCommandData]
	ScheduleQueryBus   = pkgApp.QueryBus[application.SchedulesQuery, application.FindSchedulesData, []domain.Schedule]
)

// Stores são as fontes persistidas carregadas na partida.
type Stores struct {
	Buses     domain.RecordStore[domain.Bus]
	Drivers   domain.RecordStore[domain.Driver]
	Routes    domain.RecordStore[domain.Route]
	Schedules domain.RecordStore[domain.Schedule]
	Users     domain.RecordStore[domain.User]
	DayOffs   domain.DayOffRepository
}

// Fleet é o slice da frota: registra handlers nos barramentos, expõe as
// operações usadas pelo console e pela API e serializa todo acesso.
type Fleet struct {
	mu          sync.Mutex
	buses       *application.Manager[domain.Bus]
	drivers     *application.Manager[domain.Driver]
	routes      *application.Manager[domain.Route]
	schedules   *application.ScheduleEngine
	dayOffs     domain.DayOffRepository
	login       *auth.LoginManager
	commandBus  ScheduleCommandBus
	queryBus    ScheduleQueryBus
	eventBus    application.FleetEventBus
	idGenerator pkgDomain.IDGenerator[string]
	policy      ReferentialPolicy
	logger      pkgApp.AppLogger
}

// NewFleetSlice carrega todas as coleções e registra os handlers. Arquivos
// ausentes resultam em coleções vazias.
func NewFleetSlice(
	ctx context.Context,
	stores Stores,
	commandBus ScheduleCommandBus,
	queryBus ScheduleQueryBus,
	eventBus application.FleetEventBus,
	idGenerator pkgDomain.IDGenerator[string],
	policy ReferentialPolicy,
	logger pkgApp.AppLogger,
) (*Fleet, error) {
	buses, err := stores.Buses.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load buses: %w", err)
	}
	drivers, err := stores.Drivers.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load drivers: %w", err)
	}
	routes, err := stores.Routes.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	schedules, err := stores.Schedules.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}
	users, err := stores.Users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	f := &Fleet{
		buses:       application.NewBusManager(buses, stores.Buses, logger),
		drivers:     application.NewDriverManager(drivers, stores.Drivers, logger),
		routes:      application.NewRouteManager(routes, stores.Routes, logger),
		dayOffs:     stores.DayOffs,
		login:       auth.NewLoginManager(users, logger),
		commandBus:  commandBus,
		queryBus:    queryBus,
		eventBus:    eventBus,
		idGenerator: idGenerator,
		policy:      policy,
		logger:      logger,
	}
	f.schedules = application.NewScheduleEngine(schedules, stores.Schedules, f.routes, f.buses, f.drivers, logger)

	commandHandler := application.NewScheduleCommandHandler(f.schedules, eventBus, idGenerator, logger)
	for _, name := range []string{application.AddScheduleCommand, application.UpdateScheduleCommand, application.RemoveScheduleCommand} {
		commandBus.RegisterHandler(name, commandHandler)
	}
	queryBus.RegisterHandler(application.FindSchedulesQuery, application.NewFindSchedulesHandler(f.schedules, logger))

	auditHandler := application.NewAuditEventHandler(logger)
	for _, name := range application.FleetEventNames() {
		eventBus.RegisterHandler(name, auditHandler)
	}

	pkgApp.LogInfo(ctx, logger, "fleet loaded", map[string]interface{}{
		"buses":     len(buses),
		"drivers":   len(drivers),
		"routes":    len(routes),
		"schedules": len(schedules),
		"users":     len(users),
	})
	return f, nil
}

// RegisterRoutes monta a API HTTP da frota no roteador.
func (f *Fleet) RegisterRoutes(router chi.Router, tokens *auth.TokenIssuer) {
	infrastructure.NewFleetHTTPHandler(f, tokens, f.logger).RegisterRoutes(router)
}

func (f *Fleet) Login(ctx context.Context, username, password string, role domain.Role) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.login.Authenticate(ctx, username, password, role)
}

func (f *Fleet) Logout(ctx context.Context, session *auth.Session) {
	f.login.Logout(ctx, session)
}

// Routes

func (f *Fleet) Routes() []domain.Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.routes.All()
}

func (f *Fleet) SearchRoutes(filter application.RouteFilter) []domain.Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.routes.Filter(filter.Matches)
}

func (f *Fleet) FindRoute(id string) (domain.Route, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return found(f.routes.Find(id))
}

func (f *Fleet) AddRoute(ctx context.Context, r domain.Route) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishOn(ctx, f.routes.Add(ctx, r), "Route", application.ActionAdded, r.ID)
}

func (f *Fleet) UpdateRoute(ctx context.Context, id string, r domain.Route) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishOn(ctx, f.routes.Update(ctx, id, r), "Route", application.ActionUpdated, id)
}

func (f *Fleet) RemoveRoute(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkInUse("route", id, func(s domain.Schedule) bool { return s.RouteID == id }); err != nil {
		return err
	}
	return f.publishOn(ctx, f.routes.Remove(ctx, id), "Route", application.ActionRemoved, id)
}

// Buses

func (f *Fleet) Buses() []domain.Bus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buses.All()
}

func (f *Fleet) FindBus(id string) (domain.Bus, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return found(f.buses.Find(id))
}

func (f *Fleet) AddBus(ctx context.Context, b domain.Bus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishOn(ctx, f.buses.Add(ctx, b), "Bus", application.ActionAdded, b.ID)
}

func (f *Fleet) UpdateBus(ctx context.Context, id string, b domain.Bus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishOn(ctx, f.buses.Update(ctx, id, b), "Bus", application.ActionUpdated, id)
}

func (f *Fleet) RemoveBus(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkInUse("bus", id, func(s domain.Schedule) bool { return s.BusID == id }); err != nil {
		return err
	}
	return f.publishOn(ctx, f.buses.Remove(ctx, id), "Bus", application.ActionRemoved, id)
}

// Drivers

func (f *Fleet) Drivers() []domain.Driver {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.drivers.All()
}

func (f *Fleet) FindDriver(id string) (domain.Driver, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return found(f.drivers.Find(id))
}

func (f *Fleet) AddDriver(ctx context.Context, d domain.Driver) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishOn(ctx, f.drivers.Add(ctx, d), "Driver", application.ActionAdded, d.ID)
}

func (f *Fleet) UpdateDriver(ctx context.Context, id string, d domain.Driver) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.publishOn(ctx, f.drivers.Update(ctx, id, d), "Driver", application.ActionUpdated, id)
}

// UpdateDriverContact altera apenas o contato, mantendo os demais campos.
func (f *Fleet) UpdateDriverContact(ctx context.Context, id, contact string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	current, ok := f.drivers.Find(id)
	if !ok {
		return fmt.Errorf("driver %s: %w", id, domain.ErrNotFound)
	}
	updated := *current
	updated.ContactInfo = contact
	return f.publishOn(ctx, f.drivers.Update(ctx, id, updated), "Driver", application.ActionUpdated, id)
}

func (f *Fleet) RemoveDriver(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkInUse("driver", id, func(s domain.Schedule) bool { return s.DriverID == id }); err != nil {
		return err
	}
	return f.publishOn(ctx, f.drivers.Remove(ctx, id), "Driver", application.ActionRemoved, id)
}

// Schedules

func (f *Fleet) FindSchedule(id string) (domain.Schedule, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return found(f.schedules.Find(id))
}

// Schedules consulta pelo query bus. O contexto repassado não é cancelável
// para que o handler termine antes de o lock ser liberado.
func (f *Fleet) Schedules(ctx context.Context, filter application.FindSchedulesData) ([]domain.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queryBus.Dispatch(context.WithoutCancel(ctx), application.NewFindSchedulesQuery(filter))
}

func (f *Fleet) AddSchedule(ctx context.Context, s domain.Schedule) error {
	if err := application.ValidateScheduleInput(s); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commandBus.Dispatch(ctx, application.NewAddScheduleCommand(s))
}

func (f *Fleet) UpdateSchedule(ctx context.Context, id string, s domain.Schedule) error {
	if s.ID == "" {
		s.ID = id
	}
	if err := application.ValidateScheduleInput(s); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commandBus.Dispatch(ctx, application.NewUpdateScheduleCommand(id, s))
}

func (f *Fleet) RemoveSchedule(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.commandBus.Dispatch(ctx, application.NewRemoveScheduleCommand(id))
}

// Day-off requests

func (f *Fleet) RequestDayOff(ctx context.Context, request domain.DayOffRequest) error {
	if err := application.ValidateDayOffInput(request); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.dayOffs.Append(ctx, request); err != nil {
		return err
	}
	application.PublishFleetEvent(ctx, f.eventBus, f.idGenerator, f.logger, "DayOff", application.ActionAdded, request.DriverID, map[string]string{
		"date": request.Date,
	})
	return nil
}

func (f *Fleet) DayOffRequests(ctx context.Context) ([]domain.DayOffRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dayOffs.List(ctx)
}

func (f *Fleet) checkInUse(entity, id string, uses func(domain.Schedule) bool) error {
	if f.policy != PolicyBlock {
		return nil
	}
	for _, s := range f.schedules.All() {
		if uses(s) {
			return &domain.InUseError{Entity: entity, ID: id, ScheduleID: s.ID}
		}
	}
	return nil
}

func (f *Fleet) publishOn(ctx context.Context, err error, entity, action, id string) error {
	if err != nil {
		return err
	}
	application.PublishFleetEvent(ctx, f.eventBus, f.idGenerator, f.logger, entity, action, id, nil)
	return nil
}

func found[T any](rec *T, ok bool) (T, bool) {
	if !ok {
		var zero T
		return zero, false
	}
	return *rec, true
}
