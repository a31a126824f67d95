package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("duplicate id")
)

// ValidationError descreve a primeira regra de campo violada.
type ValidationError struct {
	Entity  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ReferenceError indica que um agendamento aponta para um registro inexistente.
type ReferenceError struct {
	Kind string // route, bus ou driver
	ID   string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s ID %s not found", e.Kind, e.ID)
}

// OverlapError carrega a janela do agendamento já existente que conflita.
type OverlapError struct {
	Resource   string // bus ou driver
	ID         string
	ScheduleID string
	Date       string
	Departure  string
	Arrival    string
}

func (e *OverlapError) Error() string {
	verb := "scheduled"
	if e.Resource == "driver" {
		verb = "assigned"
	}
	return fmt.Sprintf("%s %s is already %s on %s from %s to %s",
		e.Resource, e.ID, verb, e.Date, e.Departure, e.Arrival)
}

type InUseError struct {
	Entity     string
	ID         string
	ScheduleID string
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s %s is referenced by schedule %s", e.Entity, e.ID, e.ScheduleID)
}

// IsRejection reporta se err é uma recusa de regra de negócio (e não uma falha de I/O).
func IsRejection(err error) bool {
	var (
		validation *ValidationError
		reference  *ReferenceError
		overlap    *OverlapError
		inUse      *InUseError
	)
	return errors.As(err, &validation) || errors.As(err, &reference) ||
		errors.As(err, &overlap) || errors.As(err, &inUse) ||
		errors.Is(err, ErrDuplicateID) || errors.Is(err, ErrNotFound)
}
