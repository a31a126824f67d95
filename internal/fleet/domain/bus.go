package domain

import "strings"

type BusStatus string

const (
	BusActive      BusStatus = "Active"
	BusMaintenance BusStatus = "Maintenance"
	BusInactive    BusStatus = "Inactive"
)

var busStatuses = []BusStatus{BusActive, BusMaintenance, BusInactive}

// ParseBusStatus aceita o status sem diferenciar maiúsculas e devolve a forma canônica.
func ParseBusStatus(s string) (BusStatus, bool) {
	s = strings.TrimSpace(s)
	for _, status := range busStatuses {
		if strings.EqualFold(s, string(status)) {
			return status, true
		}
	}
	return "", false
}

type Bus struct {
	ID       string    `json:"id" validate:"required,excludesall=0x2C\r\n"`
	Capacity int       `json:"capacity" validate:"gt=0"`
	Model    string    `json:"model" validate:"required,excludesall=0x2C\r\n"`
	Status   BusStatus `json:"status" validate:"oneof=Active Maintenance Inactive"`
}

func (b Bus) Key() string {
	return b.ID
}
