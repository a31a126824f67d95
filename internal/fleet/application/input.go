package application

import (
	"strings"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

// ValidateScheduleInput aplica as regras de formato exigidas na entrada
// (console e HTTP) antes de o registro chegar ao ScheduleEngine, que compara
// data e horários apenas como texto.
func ValidateScheduleInput(s domain.Schedule) error {
	for _, id := range []struct{ field, value string }{
		{"ID", s.ID}, {"RouteID", s.RouteID}, {"BusID", s.BusID}, {"DriverID", s.DriverID},
	} {
		if !domain.IsValidID(id.value) {
			return inputError("schedule", id.field, id.field+" must be 1-20 characters without spaces or commas")
		}
	}
	if !domain.IsValidDate(s.Date) {
		return inputError("schedule", "Date", "invalid date format, use YYYY-MM-DD")
	}
	if !domain.IsValidTime(s.DepartureTime) || !domain.IsValidTime(s.ArrivalTime) {
		return inputError("schedule", "DepartureTime", "invalid time format, use HH:MM (00:00-23:59)")
	}
	return nil
}

func ValidateDayOffInput(r domain.DayOffRequest) error {
	if r.DriverID == "" {
		return inputError("dayoff", "DriverID", "driver ID must be provided")
	}
	if !domain.IsValidID(r.DriverID) {
		return inputError("dayoff", "DriverID", "DriverID must be 1-20 characters without spaces or commas")
	}
	if !domain.IsValidDate(r.Date) {
		return inputError("dayoff", "Date", "invalid date format, use YYYY-MM-DD")
	}
	// o motivo é o último campo da linha e pode conter vírgulas
	if strings.ContainsAny(r.Reason, "\r\n") {
		return inputError("dayoff", "Reason", "reason cannot contain line breaks")
	}
	return nil
}

// ValidateText recusa os delimitadores do formato em disco.
func ValidateText(entity, field, value string) error {
	if strings.ContainsAny(value, ",\n\r") {
		return inputError(entity, field, field+" cannot contain commas or line breaks")
	}
	return nil
}

func inputError(entity, field, msg string) error {
	return &domain.ValidationError{Entity: entity, Field: field, Message: msg}
}
