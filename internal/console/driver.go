package console

import (
	"context"

	"github.com/mateusmacedo/go-fleet/internal/auth"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

// driverDashboard opera sempre sobre o motorista da sessão.
func (c *Console) driverDashboard(ctx context.Context, session *auth.Session) error {
	driverID := session.DriverID()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.menu("DRIVER DASHBOARD",
			"View Assigned Schedule",
			"View Personal Profile",
			"Update Contact Information",
			"Request Day Off",
			"View Bus Details",
			"Logout",
		)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			err = c.assignedSchedules(ctx, driverID)
		case 2:
			c.heading("My Profile")
			if driver, ok := c.fleet.FindDriver(driverID); ok {
				c.showDriver(driver)
			} else {
				c.failure("Driver profile not found.")
			}
		case 3:
			err = c.updateContact(ctx, driverID)
		case 4:
			err = c.requestDayOff(ctx, driverID)
		case 5:
			err = c.busDetails()
		case 6:
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

func (c *Console) assignedSchedules(ctx context.Context, driverID string) error {
	c.heading("My Assigned Schedules")
	date, err := c.promptOptional("Enter date to view schedules (YYYY-MM-DD) or press Enter for all: ", checkDate)
	if err != nil {
		return err
	}
	schedules, err := c.fleet.Schedules(ctx, application.FindSchedulesData{DriverID: driverID, Date: date})
	if err != nil {
		c.report(ctx, "driver schedules", err, "")
		return nil
	}
	if len(schedules) == 0 && date != "" {
		c.println("No schedules found for the specified date.")
		return nil
	}
	if len(schedules) == 0 {
		c.println("No schedules assigned to you.")
		return nil
	}
	c.showSchedules(schedules)
	return nil
}

func (c *Console) updateContact(ctx context.Context, driverID string) error {
	c.heading("Update Contact Information")
	driver, ok := c.fleet.FindDriver(driverID)
	if !ok {
		c.failure("Driver profile not found.")
		return nil
	}
	c.field("Current Contact Info", driver.ContactInfo)

	contact, err := c.promptOptional("Enter new contact information (or press Enter to cancel): ", checkContact)
	if err != nil {
		return err
	}
	if contact == "" {
		c.println("Update cancelled.")
		return nil
	}
	c.report(ctx, "update contact", c.fleet.UpdateDriverContact(ctx, driverID, contact), "Contact information updated successfully.")
	return nil
}

func (c *Console) requestDayOff(ctx context.Context, driverID string) error {
	c.heading("Request Day Off")
	date, err := c.promptValid("Enter date for day off (YYYY-MM-DD): ", checkDate)
	if err != nil {
		return err
	}
	reason, err := c.prompt("Enter reason (optional): ")
	if err != nil {
		return err
	}

	err = c.fleet.RequestDayOff(ctx, domain.DayOffRequest{DriverID: driverID, Date: date, Reason: reason})
	if err != nil {
		c.report(ctx, "request day off", err, "")
		return nil
	}
	c.success("Day off request submitted successfully.")
	c.println("An administrator will review your request.")
	return nil
}

func (c *Console) busDetails() error {
	c.heading("Bus Details")
	id, err := c.promptValid("Enter Bus ID to view details: ", checkID("Bus"))
	if err != nil {
		return err
	}
	bus, ok := c.fleet.FindBus(id)
	if !ok {
		c.failure("Bus not found.")
		return nil
	}
	c.showBus(bus)
	return nil
}
