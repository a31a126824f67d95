package application

import (
	"context"
	"fmt"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
)

type scheduleCommandHandler struct {
	engine      *ScheduleEngine
	eventBus    FleetEventBus
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func NewScheduleCommandHandler(
	engine *ScheduleEngine,
	eventBus FleetEventBus,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
) pkgApp.CommandHandler[ScheduleCommand, ScheduleCommandData] {
	return &scheduleCommandHandler{
		engine:      engine,
		eventBus:    eventBus,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

func (h *scheduleCommandHandler) Handle(ctx context.Context, command ScheduleCommand) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	var (
		action string
		err    error
	)

	switch command.CommandName() {
	case AddScheduleCommand:
		action = ActionAdded
		err = h.engine.AddSchedule(ctx, data.Schedule)
	case UpdateScheduleCommand:
		action = ActionUpdated
		err = h.engine.UpdateSchedule(ctx, data.ScheduleID, data.Schedule)
	case RemoveScheduleCommand:
		action = ActionRemoved
		err = h.engine.RemoveSchedule(ctx, data.ScheduleID)
	default:
		return fmt.Errorf("unsupported schedule command %q", command.CommandName())
	}
	if err != nil {
		return err
	}

	id := data.ScheduleID
	if id == "" {
		id = data.Schedule.ID
	}
	details := map[string]string{}
	if action != ActionRemoved {
		details["busId"] = data.Schedule.BusID
		details["driverId"] = data.Schedule.DriverID
		details["date"] = data.Schedule.Date
	}
	PublishFleetEvent(ctx, h.eventBus, h.idGenerator, h.logger, "Schedule", action, id, details)
	return nil
}

// PublishFleetEvent publica o evento e apenas registra falhas: a alteração já
// foi gravada e não é desfeita por um problema no transporte.
func PublishFleetEvent(
	ctx context.Context,
	eventBus FleetEventBus,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	entity, action, entityID string,
	details map[string]string,
) {
	if eventBus == nil {
		return
	}
	event := NewFleetEvent(idGenerator(), entity, action, entityID, details)
	if err := eventBus.Publish(ctx, event); err != nil {
		pkgApp.LogError(ctx, logger, "error publishing fleet event", err, map[string]interface{}{
			"event_name": event.EventName(),
			"entity_id":  entityID,
		})
	}
}

type findSchedulesHandler struct {
	engine *ScheduleEngine
	logger pkgApp.AppLogger
}

func NewFindSchedulesHandler(engine *ScheduleEngine, logger pkgApp.AppLogger) pkgApp.QueryHandler[SchedulesQuery, FindSchedulesData, []domain.Schedule] {
	return &findSchedulesHandler{
		engine: engine,
		logger: logger,
	}
}

func (h *findSchedulesHandler) Handle(ctx context.Context, query SchedulesQuery) ([]domain.Schedule, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "context cancelled", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	filter := query.Payload()
	schedules := h.engine.schedules.Filter(filter.matches)

	pkgApp.LogDebug(ctx, h.logger, "schedules found", map[string]interface{}{
		"driver_id": filter.DriverID,
		"bus_id":    filter.BusID,
		"route_id":  filter.RouteID,
		"date":      filter.Date,
		"count":     len(schedules),
	})
	return schedules, nil
}

type auditEventHandler struct {
	logger pkgApp.AppLogger
}

// NewAuditEventHandler registra cada evento da frota no log.
func NewAuditEventHandler(logger pkgApp.AppLogger) pkgApp.EventHandler[pkgDomain.Event[FleetEvent], FleetEvent] {
	return &auditEventHandler{logger: logger}
}

func (h *auditEventHandler) Handle(ctx context.Context, event pkgDomain.Event[FleetEvent]) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	payload := event.Payload()
	pkgApp.LogInfo(ctx, h.logger, "fleet event", map[string]interface{}{
		"event_name": event.EventName(),
		"event_id":   payload.EventID,
		"entity_id":  payload.EntityID,
		"details":    payload.Details,
	})
	return nil
}
