package application

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-fleet/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

type recordingHandler struct {
	mu     sync.Mutex
	events []FleetEvent
}

func (h *recordingHandler) Handle(ctx context.Context, event pkgDomain.Event[FleetEvent]) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event.Payload())
	return nil
}

func TestScheduleCommandHandler_PublishesEvents(t *testing.T) {
	logger := zapAdapter.NewNopAppLogger()
	f := newEngineFixture()
	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[FleetEvent], FleetEvent](logger)
	recorder := &recordingHandler{}
	eventBus.RegisterHandler(EventName("Schedule", ActionAdded), recorder)
	eventBus.RegisterHandler(EventName("Schedule", ActionRemoved), recorder)

	commandBus := pkgInfra.NewSimpleCommandBus[ScheduleCommand, ScheduleCommandData](logger)
	handler := NewScheduleCommandHandler(f.engine, eventBus, func() string { return "evt-1" }, logger)
	for _, name := range []string{AddScheduleCommand, UpdateScheduleCommand, RemoveScheduleCommand} {
		commandBus.RegisterHandler(name, handler)
	}
	ctx := context.Background()

	s := sched("S001", "R001", "B001", "D101", "2025-12-01", "08:00", "09:00")
	if err := commandBus.Dispatch(ctx, NewAddScheduleCommand(s)); err != nil {
		t.Fatalf("dispatch add: %v", err)
	}
	if err := commandBus.Dispatch(ctx, NewRemoveScheduleCommand("S001")); err != nil {
		t.Fatalf("dispatch remove: %v", err)
	}

	if len(recorder.events) != 2 {
		t.Fatalf("expected 2 events, got %+v", recorder.events)
	}
	added := recorder.events[0]
	if added.Action != ActionAdded || added.EntityID != "S001" || added.EventID != "evt-1" || added.Details["busId"] != "B001" {
		t.Errorf("unexpected added event %+v", added)
	}
	if recorder.events[1].Action != ActionRemoved {
		t.Errorf("unexpected removed event %+v", recorder.events[1])
	}
}

func TestScheduleCommandHandler_RejectionReachesCaller(t *testing.T) {
	logger := zapAdapter.NewNopAppLogger()
	f := newEngineFixture()
	recorder := &recordingHandler{}
	eventBus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[FleetEvent], FleetEvent](logger)
	eventBus.RegisterHandler(EventName("Schedule", ActionAdded), recorder)

	commandBus := pkgInfra.NewSimpleCommandBus[ScheduleCommand, ScheduleCommandData](logger)
	commandBus.RegisterHandler(AddScheduleCommand, NewScheduleCommandHandler(f.engine, eventBus, func() string { return "x" }, logger))

	err := commandBus.Dispatch(context.Background(), NewAddScheduleCommand(sched("S001", "R999", "B001", "D101", "2025-12-01", "08:00", "09:00")))
	var refErr *domain.ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferenceError through the bus, got %v", err)
	}
	if len(recorder.events) != 0 {
		t.Error("no event should be published for a rejected command")
	}
}

func TestFindSchedulesHandler_CombinesFilters(t *testing.T) {
	logger := zapAdapter.NewNopAppLogger()
	f := newEngineFixture(
		sched("S1", "R001", "B001", "D101", "2025-12-01", "08:00", "09:00"),
		sched("S2", "R001", "B001", "D101", "2025-12-02", "08:00", "09:00"),
		sched("S3", "R002", "B002", "D102", "2025-12-01", "08:00", "09:00"),
	)
	queryBus := pkgInfra.NewSimpleQueryBus[SchedulesQuery, FindSchedulesData, []domain.Schedule](logger)
	queryBus.RegisterHandler(FindSchedulesQuery, NewFindSchedulesHandler(f.engine, logger))

	got, err := queryBus.Dispatch(context.Background(), NewFindSchedulesQuery(FindSchedulesData{DriverID: "D101", Date: "2025-12-02"}))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "S2" {
		t.Errorf("unexpected result %+v", got)
	}

	all, _ := queryBus.Dispatch(context.Background(), NewFindSchedulesQuery(FindSchedulesData{}))
	if len(all) != 3 {
		t.Errorf("empty filter should return everything, got %d", len(all))
	}
}
