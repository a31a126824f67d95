package console

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

func (c *Console) table(empty string, headers []string, rows [][]string) {
	if len(rows) == 0 {
		c.println(empty)
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(c.out, t.String())
}

func (c *Console) showRoutes(routes []domain.Route) {
	rows := make([][]string, 0, len(routes))
	for _, r := range routes {
		rows = append(rows, []string{r.ID, r.Origin, r.Destination, r.StopsString(), strconv.Itoa(r.EstimatedTravelTime)})
	}
	c.table("No routes found.", []string{"Route ID", "Origin", "Destination", "Key Stops", "Time (min)"}, rows)
}

func (c *Console) showBuses(buses []domain.Bus) {
	rows := make([][]string, 0, len(buses))
	for _, b := range buses {
		rows = append(rows, []string{b.ID, strconv.Itoa(b.Capacity), b.Model, string(b.Status)})
	}
	c.table("No buses found.", []string{"Bus ID", "Capacity", "Model", "Status"}, rows)
}

func (c *Console) showDrivers(drivers []domain.Driver) {
	rows := make([][]string, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, []string{d.ID, d.Name, d.ContactInfo, d.LicenseDetails})
	}
	c.table("No drivers found.", []string{"Driver ID", "Name", "Contact", "License"}, rows)
}

func (c *Console) showSchedules(schedules []domain.Schedule) {
	rows := make([][]string, 0, len(schedules))
	for _, s := range schedules {
		rows = append(rows, []string{s.ID, s.RouteID, s.BusID, s.DriverID, s.Date, s.DepartureTime, s.ArrivalTime})
	}
	c.table("No schedules found.", []string{"Schedule ID", "Route", "Bus", "Driver", "Date", "Departure", "Arrival"}, rows)
}

func (c *Console) showDayOffs(requests []domain.DayOffRequest) {
	rows := make([][]string, 0, len(requests))
	for _, r := range requests {
		rows = append(rows, []string{r.DriverID, r.Date, r.Reason})
	}
	c.table("No day off requests.", []string{"Driver ID", "Date", "Reason"}, rows)
}

func (c *Console) showBus(b domain.Bus) {
	c.field("Bus ID", b.ID)
	c.field("Capacity", b.Capacity)
	c.field("Model", b.Model)
	c.field("Status", b.Status)
}

func (c *Console) showDriver(d domain.Driver) {
	c.field("Driver ID", d.ID)
	c.field("Name", d.Name)
	c.field("Contact Info", d.ContactInfo)
	c.field("License Details", d.LicenseDetails)
}

func (c *Console) showRoute(r domain.Route) {
	c.field("Route ID", r.ID)
	c.field("Origin", r.Origin)
	c.field("Destination", r.Destination)
	c.field("Key Stops", r.StopsString())
	c.field("Estimated Travel Time", fmt.Sprintf("%d minutes", r.EstimatedTravelTime))
}
