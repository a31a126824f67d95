package application

import (
	"context"
	"errors"
	"testing"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

func newBusManager(store *memoryStore[domain.Bus], buses ...domain.Bus) *Manager[domain.Bus] {
	return NewBusManager(buses, store, zapAdapter.NewNopAppLogger())
}

func TestManager_AddPersistsEveryMutation(t *testing.T) {
	store := &memoryStore[domain.Bus]{}
	m := newBusManager(store)
	ctx := context.Background()

	if err := m.Add(ctx, domain.Bus{ID: "B001", Capacity: 50, Model: "Volvo", Status: domain.BusActive}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if store.saves() != 1 || len(store.saved[0]) != 1 {
		t.Fatalf("expected one full rewrite with one record, got %v", store.saved)
	}

	err := m.Add(ctx, domain.Bus{ID: "B001", Capacity: 30, Model: "Other", Status: domain.BusInactive})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if store.saves() != 1 {
		t.Error("a rejected add must not rewrite the store")
	}
}

func TestManager_BusValidation(t *testing.T) {
	m := newBusManager(&memoryStore[domain.Bus]{})

	cases := []struct {
		name  string
		bus   domain.Bus
		field string
	}{
		{"empty id", domain.Bus{Capacity: 10, Model: "X", Status: domain.BusActive}, "ID"},
		{"zero capacity", domain.Bus{ID: "B1", Model: "X", Status: domain.BusActive}, "Capacity"},
		{"negative capacity", domain.Bus{ID: "B1", Capacity: -5, Model: "X", Status: domain.BusActive}, "Capacity"},
		{"empty model", domain.Bus{ID: "B1", Capacity: 10, Status: domain.BusActive}, "Model"},
		{"invalid status", domain.Bus{ID: "B1", Capacity: 10, Model: "X", Status: "InvalidStatus"}, "Status"},
		{"comma in id", domain.Bus{ID: "B,9", Capacity: 10, Model: "X", Status: domain.BusActive}, "ID"},
		{"line break in model", domain.Bus{ID: "B1", Capacity: 10, Model: "Volvo\n9700", Status: domain.BusActive}, "Model"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := m.Add(context.Background(), tc.bus)
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("field = %s, want %s", verr.Field, tc.field)
			}
		})
	}
	if len(m.All()) != 0 {
		t.Error("rejected records must not be stored")
	}
}

func TestManager_RouteValidation(t *testing.T) {
	m := NewRouteManager(nil, &memoryStore[domain.Route]{}, zapAdapter.NewNopAppLogger())

	err := m.Add(context.Background(), domain.Route{ID: "R1", Origin: "A", Destination: "A", EstimatedTravelTime: 10})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Message != "origin and destination cannot be the same" {
		t.Fatalf("unexpected error %v", err)
	}

	err = m.Add(context.Background(), domain.Route{ID: "R1", Origin: "A", Destination: "B"})
	if !errors.As(err, &verr) || verr.Field != "EstimatedTravelTime" {
		t.Fatalf("expected travel time rejection, got %v", err)
	}

	for _, stops := range [][]string{{"Central", "A,B"}, {"A|B"}} {
		err = m.Add(context.Background(), domain.Route{ID: "R1", Origin: "A", Destination: "B", KeyStops: stops, EstimatedTravelTime: 10})
		if !errors.As(err, &verr) || verr.Field != "KeyStops" {
			t.Fatalf("stops %q: expected KeyStops rejection, got %v", stops, err)
		}
	}
}

func TestManager_DriverValidation(t *testing.T) {
	m := NewDriverManager(nil, &memoryStore[domain.Driver]{}, zapAdapter.NewNopAppLogger())

	err := m.Add(context.Background(), domain.Driver{ID: "D1", Name: "Ana", ContactInfo: "555-0101"})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "LicenseDetails" {
		t.Fatalf("expected license rejection, got %v", err)
	}

	err = m.Add(context.Background(), domain.Driver{ID: "D1", Name: "Souza, Ana", ContactInfo: "555-0101", LicenseDetails: "CDL-A"})
	if !errors.As(err, &verr) || verr.Field != "Name" || verr.Message != "driver Name cannot contain commas or line breaks" {
		t.Fatalf("expected name rejection, got %v", err)
	}
	if len(m.All()) != 0 {
		t.Error("rejected driver was stored")
	}
}

func TestManager_Update(t *testing.T) {
	store := &memoryStore[domain.Bus]{}
	m := newBusManager(store, domain.Bus{ID: "B001", Capacity: 50, Model: "Volvo", Status: domain.BusActive})
	ctx := context.Background()

	if err := m.Update(ctx, "B001", domain.Bus{Capacity: 55, Model: "Volvo", Status: domain.BusMaintenance}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	bus, ok := m.Find("B001")
	if !ok || bus.Capacity != 55 || bus.Status != domain.BusMaintenance {
		t.Fatalf("record not replaced: %+v", bus)
	}

	if err := m.Update(ctx, "B999", domain.Bus{ID: "B999", Capacity: 1, Model: "X", Status: domain.BusActive}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	var verr *domain.ValidationError
	if err := m.Update(ctx, "B001", domain.Bus{ID: "B002", Capacity: 1, Model: "X", Status: domain.BusActive}); !errors.As(err, &verr) {
		t.Errorf("renaming through update should be rejected, got %v", err)
	}
}

func TestManager_Remove(t *testing.T) {
	store := &memoryStore[domain.Bus]{}
	m := newBusManager(store, domain.Bus{ID: "B001", Capacity: 50, Model: "Volvo", Status: domain.BusActive})

	if err := m.Remove(context.Background(), "B001"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if m.Exists("B001") || len(store.saved[0]) != 0 {
		t.Error("record still present after removal")
	}
	if err := m.Remove(context.Background(), "B001"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_RollsBackWhenSaveFails(t *testing.T) {
	store := &memoryStore[domain.Bus]{}
	original := domain.Bus{ID: "B001", Capacity: 50, Model: "Volvo", Status: domain.BusActive}
	m := newBusManager(store, original)
	ctx := context.Background()
	store.err = errDiskFull

	if err := m.Add(ctx, domain.Bus{ID: "B002", Capacity: 40, Model: "MAN", Status: domain.BusActive}); !errors.Is(err, errDiskFull) {
		t.Fatalf("Add() error = %v", err)
	}
	if err := m.Update(ctx, "B001", domain.Bus{ID: "B001", Capacity: 10, Model: "X", Status: domain.BusInactive}); !errors.Is(err, errDiskFull) {
		t.Fatalf("Update() error = %v", err)
	}
	if err := m.Remove(ctx, "B001"); !errors.Is(err, errDiskFull) {
		t.Fatalf("Remove() error = %v", err)
	}

	all := m.All()
	if len(all) != 1 || all[0] != original {
		t.Fatalf("in-memory state changed after failed saves: %+v", all)
	}
}

func TestManager_AllReturnsCopy(t *testing.T) {
	m := newBusManager(&memoryStore[domain.Bus]{}, domain.Bus{ID: "B001", Capacity: 50, Model: "Volvo", Status: domain.BusActive})

	all := m.All()
	all[0].Capacity = 1

	bus, _ := m.Find("B001")
	if bus.Capacity != 50 {
		t.Error("All() must not alias the live records")
	}
}
