package infrastructure

import (
	"fmt"
	"strconv"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

type BusCodec struct{}

func (BusCodec) Name() string { return "buses" }
func (BusCodec) Fields() int  { return 4 }

func (BusCodec) Decode(f []string) (domain.Bus, error) {
	capacity, err := strconv.Atoi(f[1])
	if err != nil {
		return domain.Bus{}, fmt.Errorf("invalid capacity %q", f[1])
	}
	status := domain.BusStatus(f[3])
	if parsed, ok := domain.ParseBusStatus(f[3]); ok {
		status = parsed
	}
	return domain.Bus{ID: f[0], Capacity: capacity, Model: f[2], Status: status}, nil
}

func (BusCodec) Encode(b domain.Bus) []string {
	return []string{b.ID, strconv.Itoa(b.Capacity), b.Model, string(b.Status)}
}

type DriverCodec struct{}

func (DriverCodec) Name() string { return "drivers" }
func (DriverCodec) Fields() int  { return 4 }

func (DriverCodec) Decode(f []string) (domain.Driver, error) {
	return domain.Driver{ID: f[0], Name: f[1], ContactInfo: f[2], LicenseDetails: f[3]}, nil
}

func (DriverCodec) Encode(d domain.Driver) []string {
	return []string{d.ID, d.Name, d.ContactInfo, d.LicenseDetails}
}

type RouteCodec struct{}

func (RouteCodec) Name() string { return "routes" }
func (RouteCodec) Fields() int  { return 5 }

func (RouteCodec) Decode(f []string) (domain.Route, error) {
	travel, err := strconv.Atoi(f[4])
	if err != nil {
		return domain.Route{}, fmt.Errorf("invalid estimated travel time %q", f[4])
	}
	return domain.Route{
		ID:                  f[0],
		Origin:              f[1],
		Destination:         f[2],
		KeyStops:            domain.ParseStops(f[3]),
		EstimatedTravelTime: travel,
	}, nil
}

func (RouteCodec) Encode(r domain.Route) []string {
	return []string{r.ID, r.Origin, r.Destination, r.StopsString(), strconv.Itoa(r.EstimatedTravelTime)}
}

type ScheduleCodec struct{}

func (ScheduleCodec) Name() string { return "schedules" }
func (ScheduleCodec) Fields() int  { return 7 }

func (ScheduleCodec) Decode(f []string) (domain.Schedule, error) {
	return domain.Schedule{
		ID:            f[0],
		RouteID:       f[1],
		BusID:         f[2],
		DriverID:      f[3],
		Date:          f[4],
		DepartureTime: f[5],
		ArrivalTime:   f[6],
	}, nil
}

func (ScheduleCodec) Encode(s domain.Schedule) []string {
	return []string{s.ID, s.RouteID, s.BusID, s.DriverID, s.Date, s.DepartureTime, s.ArrivalTime}
}

type UserCodec struct{}

func (UserCodec) Name() string { return "user credentials" }
func (UserCodec) Fields() int  { return 3 }

func (UserCodec) Decode(f []string) (domain.User, error) {
	return domain.User{Username: f[0], Password: f[1], Role: domain.ParseRole(f[2])}, nil
}

func (UserCodec) Encode(u domain.User) []string {
	return []string{u.Username, u.Password, u.Role.String()}
}
