package console

import (
	"context"
	"strconv"
	"strings"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

// crudMenu agrupa as quatro ações de cada submenu do administrador.
type crudMenu struct {
	entity string
	plural string
	view   func(ctx context.Context) error
	add    func(ctx context.Context) error
	update func(ctx context.Context) error
	remove func(ctx context.Context) error
}

func (c *Console) adminDashboard(ctx context.Context, _ *auth.Session) error {
	menus := []crudMenu{
		{"Route", "Routes", c.viewRoutes, c.addRoute, c.updateRoute, c.removeRoute},
		{"Schedule", "Schedules", c.viewSchedules, c.addSchedule, c.updateSchedule, c.removeSchedule},
		{"Bus", "Buses", c.viewBuses, c.addBus, c.updateBus, c.removeBus},
		{"Driver", "Drivers", c.viewDrivers, c.addDriver, c.updateDriver, c.removeDriver},
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.menu("ADMIN DASHBOARD",
			"Manage Routes",
			"Manage Schedules",
			"Manage Buses",
			"Manage Drivers",
			"View Day Off Requests",
			"Logout",
		)
		if err != nil {
			return err
		}

		switch {
		case choice >= 1 && choice <= len(menus):
			err = c.manage(ctx, menus[choice-1])
		case choice == 5:
			err = c.viewDayOffs(ctx)
		case choice == 6:
			c.println("Logging out...")
			return nil
		default:
			c.failure("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) manage(ctx context.Context, m crudMenu) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.menu("Manage "+m.plural,
			"View All "+m.plural,
			"Add "+m.entity,
			"Update "+m.entity,
			"Remove "+m.entity,
			"Back to Main Menu",
		)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = m.view(ctx)
		case 2:
			err = m.add(ctx)
		case 3:
			err = m.update(ctx)
		case 4:
			err = m.remove(ctx)
		case 5:
			return nil
		default:
			c.failure("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

// removeConfirmed pede id e confirmação antes de chamar remove.
func (c *Console) removeConfirmed(ctx context.Context, entity string, remove func(context.Context, string) error) error {
	id, err := c.promptValid("Enter "+entity+" ID to remove: ", checkID(entity))
	if err != nil {
		return err
	}
	ok, err := c.confirm("Are you sure you want to remove this " + strings.ToLower(entity) + "?")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Removal cancelled.")
		return nil
	}
	c.report(ctx, "remove "+strings.ToLower(entity), remove(ctx, id), entity+" removed successfully.")
	return nil
}

func (c *Console) viewDayOffs(ctx context.Context) error {
	c.heading("Day Off Requests")
	requests, err := c.fleet.DayOffRequests(ctx)
	if err != nil {
		c.report(ctx, "list day off requests", err, "")
		return nil
	}
	c.showDayOffs(requests)
	return nil
}

// Routes

func (c *Console) viewRoutes(context.Context) error {
	c.heading("All Routes")
	c.showRoutes(c.fleet.Routes())
	return nil
}

func (c *Console) addRoute(ctx context.Context) error {
	c.heading("Add Route")
	var r domain.Route
	var err error
	if r.ID, err = c.promptValid("Enter Route ID: ", checkID("Route")); err != nil {
		return err
	}
	if r.Origin, err = c.promptValid("Enter Origin: ", checkText("Origin")); err != nil {
		return err
	}
	if r.Destination, err = c.promptValid("Enter Destination: ", checkText("Destination")); err != nil {
		return err
	}
	stops, err := c.promptValid("Enter Key Stops (separated by |): ", checkStops)
	if err != nil {
		return err
	}
	r.KeyStops = parseStopsInput(stops)
	minutes, err := c.promptValid("Enter Estimated Travel Time (minutes): ", checkPositive("Travel time"))
	if err != nil {
		return err
	}
	r.EstimatedTravelTime, _ = strconv.Atoi(minutes)

	c.report(ctx, "add route", c.fleet.AddRoute(ctx, r), "Route added successfully.")
	return nil
}

func (c *Console) updateRoute(ctx context.Context) error {
	c.heading("Update Route")
	id, err := c.promptValid("Enter Route ID to update: ", checkID("Route"))
	if err != nil {
		return err
	}
	current, ok := c.fleet.FindRoute(id)
	if !ok {
		c.failure("Route not found.")
		return nil
	}
	c.showRoute(current)

	updated := current
	origin, err := c.promptOptional("Enter New Origin (or press Enter to keep current): ", checkText("Origin"))
	if err != nil {
		return err
	}
	destination, err := c.promptOptional("Enter New Destination (or press Enter to keep current): ", checkText("Destination"))
	if err != nil {
		return err
	}
	stops, err := c.promptOptional("Enter New Key Stops (separated by | or press Enter to keep current): ", checkStops)
	if err != nil {
		return err
	}
	minutes, err := c.promptOptional("Enter New Travel Time (or press Enter to keep current): ", checkPositive("Travel time"))
	if err != nil {
		return err
	}

	updated.Origin = keep(origin, current.Origin)
	updated.Destination = keep(destination, current.Destination)
	if stops != "" {
		updated.KeyStops = parseStopsInput(stops)
	}
	if minutes != "" {
		updated.EstimatedTravelTime, _ = strconv.Atoi(minutes)
	}

	c.report(ctx, "update route", c.fleet.UpdateRoute(ctx, id, updated), "Route updated successfully.")
	return nil
}

func (c *Console) removeRoute(ctx context.Context) error {
	c.heading("Remove Route")
	return c.removeConfirmed(ctx, "Route", c.fleet.RemoveRoute)
}

// Buses

func (c *Console) viewBuses(context.Context) error {
	c.heading("All Buses")
	c.showBuses(c.fleet.Buses())
	return nil
}

func (c *Console) addBus(ctx context.Context) error {
	c.heading("Add Bus")
	var b domain.Bus
	var err error
	if b.ID, err = c.promptValid("Enter Bus ID: ", checkID("Bus")); err != nil {
		return err
	}
	capacity, err := c.promptValid("Enter Capacity: ", checkPositive("Capacity"))
	if err != nil {
		return err
	}
	b.Capacity, _ = strconv.Atoi(capacity)
	if b.Model, err = c.promptValid("Enter Model: ", checkText("Model")); err != nil {
		return err
	}
	status, err := c.promptValid("Enter Status (Active/Maintenance/Inactive): ", checkStatus)
	if err != nil {
		return err
	}
	b.Status, _ = domain.ParseBusStatus(status)

	c.report(ctx, "add bus", c.fleet.AddBus(ctx, b), "Bus added successfully.")
	return nil
}

func (c *Console) updateBus(ctx context.Context) error {
	c.heading("Update Bus")
	id, err := c.promptValid("Enter Bus ID to update: ", checkID("Bus"))
	if err != nil {
		return err
	}
	current, ok := c.fleet.FindBus(id)
	if !ok {
		c.failure("Bus not found.")
		return nil
	}
	c.showBus(current)

	updated := current
	capacity, err := c.promptOptional("Enter New Capacity (or press Enter to keep current): ", checkPositive("Capacity"))
	if err != nil {
		return err
	}
	model, err := c.promptOptional("Enter New Model (or press Enter to keep current): ", checkText("Model"))
	if err != nil {
		return err
	}
	status, err := c.promptOptional("Enter New Status (or press Enter to keep current): ", checkStatus)
	if err != nil {
		return err
	}

	if capacity != "" {
		updated.Capacity, _ = strconv.Atoi(capacity)
	}
	updated.Model = keep(model, current.Model)
	if status != "" {
		updated.Status, _ = domain.ParseBusStatus(status)
	}

	c.report(ctx, "update bus", c.fleet.UpdateBus(ctx, id, updated), "Bus updated successfully.")
	return nil
}

func (c *Console) removeBus(ctx context.Context) error {
	c.heading("Remove Bus")
	return c.removeConfirmed(ctx, "Bus", c.fleet.RemoveBus)
}

// Drivers

func (c *Console) viewDrivers(context.Context) error {
	c.heading("All Drivers")
	c.showDrivers(c.fleet.Drivers())
	return nil
}

func (c *Console) addDriver(ctx context.Context) error {
	c.heading("Add Driver")
	var d domain.Driver
	var err error
	if d.ID, err = c.promptValid("Enter Driver ID: ", checkID("Driver")); err != nil {
		return err
	}
	if d.Name, err = c.promptValid("Enter Name: ", checkText("Name")); err != nil {
		return err
	}
	if d.ContactInfo, err = c.promptValid("Enter Contact Info: ", checkContact); err != nil {
		return err
	}
	if d.LicenseDetails, err = c.promptValid("Enter License Details: ", checkText("License details")); err != nil {
		return err
	}

	c.report(ctx, "add driver", c.fleet.AddDriver(ctx, d), "Driver added successfully.")
	return nil
}

func (c *Console) updateDriver(ctx context.Context) error {
	c.heading("Update Driver")
	id, err := c.promptValid("Enter Driver ID to update: ", checkID("Driver"))
	if err != nil {
		return err
	}
	current, ok := c.fleet.FindDriver(id)
	if !ok {
		c.failure("Driver not found.")
		return nil
	}
	c.showDriver(current)

	name, err := c.promptOptional("Enter New Name (or press Enter to keep current): ", checkText("Name"))
	if err != nil {
		return err
	}
	contact, err := c.promptOptional("Enter New Contact Info (or press Enter to keep current): ", checkContact)
	if err != nil {
		return err
	}
	license, err := c.promptOptional("Enter New License Details (or press Enter to keep current): ", checkText("License details"))
	if err != nil {
		return err
	}

	updated := domain.Driver{
		ID:             current.ID,
		Name:           keep(name, current.Name),
		ContactInfo:    keep(contact, current.ContactInfo),
		LicenseDetails: keep(license, current.LicenseDetails),
	}
	c.report(ctx, "update driver", c.fleet.UpdateDriver(ctx, id, updated), "Driver updated successfully.")
	return nil
}

func (c *Console) removeDriver(ctx context.Context) error {
	c.heading("Remove Driver")
	return c.removeConfirmed(ctx, "Driver", c.fleet.RemoveDriver)
}

// Schedules

func (c *Console) viewSchedules(ctx context.Context) error {
	c.heading("All Schedules")
	schedules, err := c.fleet.Schedules(ctx, application.FindSchedulesData{})
	if err != nil {
		c.report(ctx, "list schedules", err, "")
		return nil
	}
	c.showSchedules(schedules)
	return nil
}

func (c *Console) addSchedule(ctx context.Context) error {
	c.heading("Add Schedule")
	var s domain.Schedule
	fields := []struct {
		target *string
		label  string
		check  func(string) error
	}{
		{&s.ID, "Enter Schedule ID: ", checkID("Schedule")},
		{&s.RouteID, "Enter Route ID: ", checkID("Route")},
		{&s.BusID, "Enter Bus ID: ", checkID("Bus")},
		{&s.DriverID, "Enter Driver ID: ", checkID("Driver")},
		{&s.Date, "Enter Date (YYYY-MM-DD): ", checkDate},
		{&s.DepartureTime, "Enter Departure Time (HH:MM): ", checkTime},
		{&s.ArrivalTime, "Enter Arrival Time (HH:MM): ", checkTime},
	}
	for _, f := range fields {
		value, err := c.promptValid(f.label, f.check)
		if err != nil {
			return err
		}
		*f.target = value
	}

	c.report(ctx, "add schedule", c.fleet.AddSchedule(ctx, s), "Schedule added successfully.")
	return nil
}

func (c *Console) updateSchedule(ctx context.Context) error {
	c.heading("Update Schedule")
	id, err := c.promptValid("Enter Schedule ID to update: ", checkID("Schedule"))
	if err != nil {
		return err
	}
	current, ok := c.fleet.FindSchedule(id)
	if !ok {
		c.failure("Schedule not found.")
		return nil
	}
	c.showSchedules([]domain.Schedule{current})

	updated := current
	fields := []struct {
		target *string
		label  string
		check  func(string) error
	}{
		{&updated.RouteID, "Enter New Route ID (or press Enter to keep current): ", checkID("Route")},
		{&updated.BusID, "Enter New Bus ID (or press Enter to keep current): ", checkID("Bus")},
		{&updated.DriverID, "Enter New Driver ID (or press Enter to keep current): ", checkID("Driver")},
		{&updated.Date, "Enter New Date (or press Enter to keep current): ", checkDate},
		{&updated.DepartureTime, "Enter New Departure Time (or press Enter to keep current): ", checkTime},
		{&updated.ArrivalTime, "Enter New Arrival Time (or press Enter to keep current): ", checkTime},
	}
	for _, f := range fields {
		value, err := c.promptOptional(f.label, f.check)
		if err != nil {
			return err
		}
		*f.target = keep(value, *f.target)
	}

	c.report(ctx, "update schedule", c.fleet.UpdateSchedule(ctx, id, updated), "Schedule updated successfully.")
	return nil
}

func (c *Console) removeSchedule(ctx context.Context) error {
	c.heading("Remove Schedule")
	return c.removeConfirmed(ctx, "Schedule", c.fleet.RemoveSchedule)
}
