package application

import (
	"github.com/mateusmacedo/go-fleet/internal/fleet/domain"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
)

const (
	AddScheduleCommand    = "AddSchedule"
	UpdateScheduleCommand = "UpdateSchedule"
	RemoveScheduleCommand = "RemoveSchedule"
)

// ScheduleCommandData é o payload comum aos comandos de agendamento.
// ScheduleID identifica o alvo em update/remove.
type ScheduleCommandData struct {
	ScheduleID string          `json:"scheduleId,omitempty"`
	Schedule   domain.Schedule `json:"schedule"`
}

type ScheduleCommand = pkgDomain.Command[ScheduleCommandData]

type scheduleCommand struct {
	name string
	data ScheduleCommandData
}

func (c scheduleCommand) CommandName() string {
	return c.name
}

func (c scheduleCommand) Payload() ScheduleCommandData {
	return c.data
}

func NewAddScheduleCommand(s domain.Schedule) ScheduleCommand {
	return scheduleCommand{name: AddScheduleCommand, data: ScheduleCommandData{ScheduleID: s.ID, Schedule: s}}
}

func NewUpdateScheduleCommand(id string, s domain.Schedule) ScheduleCommand {
	return scheduleCommand{name: UpdateScheduleCommand, data: ScheduleCommandData{ScheduleID: id, Schedule: s}}
}

func NewRemoveScheduleCommand(id string) ScheduleCommand {
	return scheduleCommand{name: RemoveScheduleCommand, data: ScheduleCommandData{ScheduleID: id}}
}
