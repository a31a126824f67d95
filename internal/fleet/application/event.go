package application

import (
	"time"

	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
)

const (
	ActionAdded   = "Added"
	ActionUpdated = "Updated"
	ActionRemoved = "Removed"
)

// FleetEvent é o payload de todos os eventos da frota (BusAdded, ScheduleUpdated, ...).
type FleetEvent struct {
	EventID    string            `json:"eventId"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	EntityID   string            `json:"entityId"`
	OccurredAt time.Time         `json:"occurredAt"`
	Details    map[string]string `json:"details,omitempty"`
}

type FleetEventBus = pkgApp.EventBus[pkgDomain.Event[FleetEvent], FleetEvent]

type fleetEvent struct {
	data FleetEvent
}

func (e fleetEvent) EventName() string {
	return EventName(e.data.Entity, e.data.Action)
}

func (e fleetEvent) Payload() FleetEvent {
	return e.data
}

// EventName monta o nome publicado, ex.: ("Schedule", "Added") -> "ScheduleAdded".
func EventName(entity, action string) string {
	return entity + action
}

func NewFleetEvent(eventID, entity, action, entityID string, details map[string]string) pkgDomain.Event[FleetEvent] {
	return fleetEvent{data: FleetEvent{
		EventID:    eventID,
		Entity:     entity,
		Action:     action,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Details:    details,
	}}
}

// FleetEventNames lista todos os nomes publicados, usado para registrar o handler de auditoria.
func FleetEventNames() []string {
	var names []string
	for _, entity := range []string{"Bus", "Driver", "Route", "Schedule", "DayOff"} {
		for _, action := range []string{ActionAdded, ActionUpdated, ActionRemoved} {
			names = append(names, EventName(entity, action))
		}
	}
	return names
}
