package console

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mateusmacedo/go-fleet/internal/fleet"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	"github.com/mateusmacedo/go-fleet/internal/fleet/infrastructure"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-fleet/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/zaplogger/adapter"
)

var seed = map[string]string{
	"buses.txt":       "B001,50,Volvo 9700,Active\nB002,40,MAN Lion,Maintenance\n",
	"drivers.txt":     "D101,Ana Souza,555-0101,CDL-A 1001\nD102,Bruno Lima,555-0102,CDL-A 1002\n",
	"routes.txt":      "R001,Downtown,Airport,Central|Market,45\nR002,Harbor,University,,30\n",
	"schedules.txt":   "S001,R001,B001,D101,2025-12-01,08:00,09:00\n",
	"credentials.txt": "admin,admin123,Admin\nD101,driver123,Driver\npass,pass123,Passenger\n",
}

type fixture struct {
	dir   string
	fleet *fleet.Fleet
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	for name, content := range seed {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	logger := zapAdapter.NewNopAppLogger()
	stores := fleet.Stores{
		Buses:     infrastructure.NewFlatFileStore[domain.Bus](filepath.Join(dir, "buses.txt"), infrastructure.BusCodec{}, logger),
		Drivers:   infrastructure.NewFlatFileStore[domain.Driver](filepath.Join(dir, "drivers.txt"), infrastructure.DriverCodec{}, logger),
		Routes:    infrastructure.NewFlatFileStore[domain.Route](filepath.Join(dir, "routes.txt"), infrastructure.RouteCodec{}, logger),
		Schedules: infrastructure.NewFlatFileStore[domain.Schedule](filepath.Join(dir, "schedules.txt"), infrastructure.ScheduleCodec{}, logger),
		Users:     infrastructure.NewFlatFileStore[domain.User](filepath.Join(dir, "credentials.txt"), infrastructure.UserCodec{}, logger),
		DayOffs:   infrastructure.NewDayOffLog(filepath.Join(dir, "dayoff_requests.txt"), logger),
	}
	f, err := fleet.NewFleetSlice(
		context.Background(),
		stores,
		pkgInfra.NewSimpleCommandBus[application.ScheduleCommand, application.ScheduleCommandData](logger),
		pkgInfra.NewSimpleQueryBus[application.SchedulesQuery, application.FindSchedulesData, []domain.Schedule](logger),
		pkgInfra.NewSimpleEventBus[pkgDomain.Event[application.FleetEvent], application.FleetEvent](logger),
		pkgInfra.GenerateUUID,
		fleet.PolicyAllow,
		logger,
	)
	if err != nil {
		t.Fatalf("NewFleetSlice() error = %v", err)
	}
	return &fixture{dir: dir, fleet: f}
}

func (fx *fixture) run(t *testing.T, opts []Option, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var logger pkgApp.AppLogger = zapAdapter.NewNopAppLogger()
	if err := New(fx.fleet, in, &out, logger, opts...).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out.String()
}

func (fx *fixture) file(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(fx.dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func assertContains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q\n--- output ---\n%s", w, out)
		}
	}
}

func TestConsole_ExitAndEndOfInput(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil, "9", "4")
	assertContains(t, out, "BUS MANAGEMENT SYSTEM", "Invalid choice", "Goodbye!")

	var buf bytes.Buffer
	if err := New(fx.fleet, strings.NewReader(""), &buf, zapAdapter.NewNopAppLogger()).Run(context.Background()); err != nil {
		t.Fatalf("Run() on empty input error = %v", err)
	}
}

func TestConsole_RunStopsOnCancelledContext(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	err := New(fx.fleet, strings.NewReader("4\n"), &buf, zapAdapter.NewNopAppLogger()).Run(ctx)
	if err != context.Canceled {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
}

func TestConsole_LoginFailures(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"1", "", "", // vazio
		"1", "ghost", "x",
		"1", "admin", "wrong",
		"2", "pass", "pass123",
		"4",
	)
	assertContains(t, out,
		"Username and password cannot be empty.",
		"Login failed: user not found",
		"Login failed: incorrect password",
		"Login failed: You don't have Driver privileges",
	)
	if strings.Contains(out, "ADMIN DASHBOARD") || strings.Contains(out, "DRIVER DASHBOARD") {
		t.Fatalf("dashboard shown after failed login:\n%s", out)
	}
}

func TestConsole_PasswordReader(t *testing.T) {
	fx := newFixture(t)
	calls := 0
	reader := func() (string, error) {
		calls++
		return "admin123", nil
	}
	out := fx.run(t, []Option{WithPasswordReader(reader)}, "1", "admin", "6", "4")
	assertContains(t, out, "Welcome, admin!", "ADMIN DASHBOARD", "Logging out...")
	if calls != 1 {
		t.Fatalf("password reader calls = %d, want 1", calls)
	}
}

func TestConsole_AdminAddScheduleRejectsOverlap(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"1", "admin", "admin123",
		"2", "2",
		"S002", "R001", "B001", "D102", "2025-12-01", "08:30", "09:30",
		"5", "6", "4",
	)
	assertContains(t, out, "Error: bus B001 is already scheduled on 2025-12-01 from 08:00 to 09:00")
	if strings.Contains(fx.file(t, "schedules.txt"), "S002") {
		t.Fatal("rejected schedule was persisted")
	}
}

func TestConsole_AdminAddScheduleRepromptsInvalidInput(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"1", "admin", "admin123",
		"2", "2",
		"bad id", "S,2", "S002", "R002", "B002", "D102",
		"2025-13-01", "2025-12-02",
		"8:00", "10:00", "11:30",
		"1", "5", "6", "4",
	)
	assertContains(t, out,
		"Schedule ID must be 1-20 characters without spaces or commas",
		"invalid date format, use YYYY-MM-DD",
		"invalid time format, use HH:MM (00:00-23:59)",
		"Schedule added successfully.",
	)
	if !strings.Contains(fx.file(t, "schedules.txt"), "S002,R002,B002,D102,2025-12-02,10:00,11:30") {
		t.Fatalf("schedules.txt = %q", fx.file(t, "schedules.txt"))
	}
}

func TestConsole_AdminUpdateBusKeepsBlankFields(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"1", "admin", "admin123",
		"3", "3", "B002", "", "", "active",
		"5", "6", "4",
	)
	assertContains(t, out, "Bus updated successfully.")

	bus, ok := fx.fleet.FindBus("B002")
	if !ok {
		t.Fatal("B002 missing")
	}
	want := domain.Bus{ID: "B002", Capacity: 40, Model: "MAN Lion", Status: domain.BusActive}
	if bus != want {
		t.Fatalf("bus = %+v, want %+v", bus, want)
	}
}

func TestConsole_AdminRemoveAsksConfirmation(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"1", "admin", "admin123",
		"1", "4", "R002", "no",
		"4", "R002", "yes",
		"5", "6", "4",
	)
	assertContains(t, out, "Removal cancelled.", "Route removed successfully.")
	if _, ok := fx.fleet.FindRoute("R002"); ok {
		t.Fatal("R002 still present")
	}
}

func TestConsole_AdminUpdateScheduleKeepsCurrentValues(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"1", "admin", "admin123",
		"2", "3", "S001", "", "B002", "", "", "", "",
		"5", "6", "4",
	)
	assertContains(t, out, "Schedule updated successfully.")

	got, _ := fx.fleet.FindSchedule("S001")
	want := domain.Schedule{ID: "S001", RouteID: "R001", BusID: "B002", DriverID: "D101", Date: "2025-12-01", DepartureTime: "08:00", ArrivalTime: "09:00"}
	if got != want {
		t.Fatalf("schedule = %+v, want %+v", got, want)
	}
}

func TestConsole_DriverDashboard(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"2", "D101", "driver123",
		"1", "",
		"1", "2025-12-02",
		"2",
		"3", "123", "555-9999",
		"4", "2025-12-05", "family, wedding",
		"5", "B404",
		"5", "B001",
		"6", "4",
	)
	assertContains(t, out,
		"DRIVER DASHBOARD",
		"S001",
		"No schedules found for the specified date.",
		"Ana Souza",
		"contact info must have at least 7 characters",
		"Contact information updated successfully.",
		"Day off request submitted successfully.",
		"Bus not found.",
		"Volvo 9700",
	)

	driver, _ := fx.fleet.FindDriver("D101")
	if driver.ContactInfo != "555-9999" {
		t.Fatalf("contact = %q", driver.ContactInfo)
	}
	requests, err := fx.fleet.DayOffRequests(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(requests) != 1 || requests[0] != (domain.DayOffRequest{DriverID: "D101", Date: "2025-12-05", Reason: "family, wedding"}) {
		t.Fatalf("requests = %+v", requests)
	}
}

func TestConsole_PassengerSearch(t *testing.T) {
	fx := newFixture(t)
	out := fx.run(t, nil,
		"3",
		"4", "market",
		"6", "4",
	)
	assertContains(t, out, "PASSENGER MENU", "R001")
	if strings.Contains(out, "R002") {
		t.Fatalf("stop search returned R002:\n%s", out)
	}

	out = fx.run(t, nil, "3", "2", "nowhere", "5", "R002", "5", "R999", "6", "4")
	assertContains(t, out, "No routes found.", "30 minutes", "Route not found.")
}
