package application

import (
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
)

const FindSchedulesQuery = "FindSchedules"

// FindSchedulesData combina filtros; campos vazios não filtram.
type FindSchedulesData struct {
	DriverID string
	BusID    string
	RouteID  string
	Date     string
}

type SchedulesQuery = pkgDomain.Query[FindSchedulesData]

type findSchedulesQuery struct {
	data FindSchedulesData
}

func (q findSchedulesQuery) QueryName() string {
	return FindSchedulesQuery
}

func (q findSchedulesQuery) Payload() FindSchedulesData {
	return q.data
}

func NewFindSchedulesQuery(data FindSchedulesData) SchedulesQuery {
	return findSchedulesQuery{data: data}
}

func (f FindSchedulesData) matches(s domain.Schedule) bool {
	return (f.DriverID == "" || s.DriverID == f.DriverID) &&
		(f.BusID == "" || s.BusID == f.BusID) &&
		(f.RouteID == "" || s.RouteID == f.RouteID) &&
		(f.Date == "" || s.Date == f.Date)
}
