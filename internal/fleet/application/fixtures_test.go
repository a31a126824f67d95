package application

import (
	"context"
	"errors"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

var errDiskFull = errors.New("disk full")

type memoryStore[T any] struct {
	saved [][]T
	err   error
}

func (s *memoryStore[T]) Load(ctx context.Context) ([]T, error) {
	if len(s.saved) == 0 {
		return nil, nil
	}
	return s.saved[len(s.saved)-1], nil
}

func (s *memoryStore[T]) Save(ctx context.Context, records []T) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, append([]T(nil), records...))
	return nil
}

func (s *memoryStore[T]) saves() int {
	return len(s.saved)
}

type engineFixture struct {
	routes    *Manager[domain.Route]
	buses     *Manager[domain.Bus]
	drivers   *Manager[domain.Driver]
	engine    *ScheduleEngine
	scheduleS *memoryStore[domain.Schedule]
}

func newEngineFixture(schedules ...domain.Schedule) *engineFixture {
	logger := zapAdapter.NewNopAppLogger()

	routes := NewRouteManager([]domain.Route{
		{ID: "R001", Origin: "Downtown", Destination: "Airport", KeyStops: []string{"Central"}, EstimatedTravelTime: 45},
		{ID: "R002", Origin: "Harbor", Destination: "University", KeyStops: []string{}, EstimatedTravelTime: 30},
	}, &memoryStore[domain.Route]{}, logger)

	buses := NewBusManager([]domain.Bus{
		{ID: "B001", Capacity: 50, Model: "Volvo 9700", Status: domain.BusActive},
		{ID: "B002", Capacity: 40, Model: "MAN Lion", Status: domain.BusActive},
		{ID: "B004", Capacity: 60, Model: "Scania Touring", Status: domain.BusActive},
	}, &memoryStore[domain.Bus]{}, logger)

	drivers := NewDriverManager([]domain.Driver{
		{ID: "D101", Name: "Ana Souza", ContactInfo: "555-0101", LicenseDetails: "CDL-A 1001"},
		{ID: "D102", Name: "Bruno Lima", ContactInfo: "555-0102", LicenseDetails: "CDL-A 1002"},
		{ID: "D103", Name: "Carla Dias", ContactInfo: "555-0103", LicenseDetails: "CDL-B 1003"},
	}, &memoryStore[domain.Driver]{}, logger)

	store := &memoryStore[domain.Schedule]{}
	engine := NewScheduleEngine(schedules, store, routes, buses, drivers, logger)

	return &engineFixture{routes: routes, buses: buses, drivers: drivers, engine: engine, scheduleS: store}
}

func sched(id, route, bus, driver, date, dep, arr string) domain.Schedule {
	return domain.Schedule{ID: id, RouteID: route, BusID: bus, DriverID: driver, Date: date, DepartureTime: dep, ArrivalTime: arr}
}
