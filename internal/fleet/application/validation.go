package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
)

// ValidateFunc devolve um *domain.ValidationError para a primeira regra violada.
type ValidateFunc[T any] func(rec T) error

var structValidate = validator.New()

// structValidator usa as tags `validate` do registro; messages é indexado por
// "Campo.tag" e mantém as mensagens em ordem de declaração dos campos.
func structValidator[T any](entity string, messages map[string]string) ValidateFunc[T] {
	return func(rec T) error {
		err := structValidate.Struct(rec)
		if err == nil {
			return nil
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return err
		}

		fe := fieldErrs[0]
		// erros de elementos (dive) chegam como "KeyStops[0]"
		field, _, _ := strings.Cut(fe.Field(), "[")
		msg, ok := messages[field+"."+fe.Tag()]
		switch {
		case ok:
		case fe.Tag() == "excludesall":
			msg = fmt.Sprintf("%s %s cannot contain commas or line breaks", entity, field)
		default:
			msg = fmt.Sprintf("%s %s is invalid", entity, field)
		}
		return &domain.ValidationError{Entity: entity, Field: field, Message: msg}
	}
}

var validateBus = structValidator[domain.Bus]("bus", map[string]string{
	"ID.required":    "bus ID cannot be empty",
	"Capacity.gt":    "bus capacity must be positive",
	"Model.required": "bus model cannot be empty",
	"Status.oneof":   "bus status must be Active, Maintenance, or Inactive",
})

var validateDriver = structValidator[domain.Driver]("driver", map[string]string{
	"ID.required":             "driver ID cannot be empty",
	"Name.required":           "driver name cannot be empty",
	"ContactInfo.required":    "driver contact info cannot be empty",
	"LicenseDetails.required": "driver license details cannot be empty",
})

var validateRoute = structValidator[domain.Route]("route", map[string]string{
	"ID.required":            "route ID cannot be empty",
	"Origin.required":        "route origin cannot be empty",
	"Destination.required":   "route destination cannot be empty",
	"Destination.nefield":    "origin and destination cannot be the same",
	"EstimatedTravelTime.gt": "estimated travel time must be positive",
	"KeyStops.excludesall":   "key stops cannot contain commas, pipes or line breaks",
})

var validateScheduleFields = structValidator[domain.Schedule]("schedule", map[string]string{
	"ID.required":            "schedule ID cannot be empty",
	"RouteID.required":       "route, bus, and driver IDs must be provided",
	"BusID.required":         "route, bus, and driver IDs must be provided",
	"DriverID.required":      "route, bus, and driver IDs must be provided",
	"Date.required":          "date must be provided",
	"DepartureTime.required": "departure and arrival times must be provided",
	"ArrivalTime.required":   "departure and arrival times must be provided",
})

// validateSchedule completa as tags com a ordem partida < chegada, comparada
// como texto (validator compara tamanhos em gtfield para strings).
func validateSchedule(s domain.Schedule) error {
	if err := validateScheduleFields(s); err != nil {
		return err
	}
	if s.DepartureTime >= s.ArrivalTime {
		return &domain.ValidationError{
			Entity:  "schedule",
			Field:   "DepartureTime",
			Message: "departure time must be before arrival time",
		}
	}
	return nil
}
