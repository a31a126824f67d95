package console

import (
	"context"

	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
)

// passengerMenu não exige login.
func (c *Console) passengerMenu(ctx context.Context) error {
	c.println("Welcome to Passenger Services!")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.menu("PASSENGER MENU",
			"View All Available Routes",
			"Search Routes by Origin",
			"Search Routes by Destination",
			"Search Routes by Stop",
			"View Estimated Travel Time",
			"Back to Main Menu",
		)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			c.heading("All Available Routes")
			c.showRoutes(c.fleet.Routes())
		case 2:
			err = c.searchRoutes("Origin", func(v string) application.RouteFilter { return application.RouteFilter{Origin: v} })
		case 3:
			err = c.searchRoutes("Destination", func(v string) application.RouteFilter { return application.RouteFilter{Destination: v} })
		case 4:
			err = c.searchRoutes("Stop", func(v string) application.RouteFilter { return application.RouteFilter{Stop: v} })
		case 5:
			err = c.travelTime()
		case 6:
			return nil
		default:
			c.failure("Invalid choice. Please try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (c *Console) searchRoutes(field string, filter func(string) application.RouteFilter) error {
	c.heading("Search by " + field)
	value, err := c.promptValid("Enter "+field+": ", checkText(field))
	if err != nil {
		return err
	}
	c.showRoutes(c.fleet.SearchRoutes(filter(value)))
	return nil
}

func (c *Console) travelTime() error {
	c.heading("View Estimated Travel Time")
	id, err := c.promptValid("Enter Route ID: ", checkID("Route"))
	if err != nil {
		return err
	}
	route, ok := c.fleet.FindRoute(id)
	if !ok {
		c.failure("Route not found.")
		return nil
	}
	c.showRoute(route)
	return nil
}
