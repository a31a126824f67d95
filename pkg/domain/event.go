package domain

// Event representa algo que já aconteceu na frota (ex.: ScheduleAdded).
type Event[T any] interface {
	EventName() string
	Payload() T
}
