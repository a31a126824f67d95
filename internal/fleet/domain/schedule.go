package domain

// Schedule liga rota, ônibus e motorista numa janela de horário de um dia.
// Data e horários são comparados lexicalmente ("YYYY-MM-DD", "HH:MM").
type Schedule struct {
	ID            string `json:"id" validate:"required,excludesall=0x2C\r\n"`
	RouteID       string `json:"routeId" validate:"required,excludesall=0x2C\r\n"`
	BusID         string `json:"busId" validate:"required,excludesall=0x2C\r\n"`
	DriverID      string `json:"driverId" validate:"required,excludesall=0x2C\r\n"`
	Date          string `json:"date" validate:"required,excludesall=0x2C\r\n"`
	DepartureTime string `json:"departureTime" validate:"required,excludesall=0x2C\r\n"`
	ArrivalTime   string `json:"arrivalTime" validate:"required,excludesall=0x2C\r\n"`
}

func (s Schedule) Key() string {
	return s.ID
}

// OverlapsWith é falso para datas diferentes. Janelas que apenas se tocam
// (chegada de uma igual à partida da outra) não se sobrepõem.
func (s Schedule) OverlapsWith(other Schedule) bool {
	if s.Date != other.Date {
		return false
	}
	return !(s.ArrivalTime <= other.DepartureTime || s.DepartureTime >= other.ArrivalTime)
}
