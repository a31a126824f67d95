package domain

// Query representa uma consulta somente leitura.
type Query[T any] interface {
	QueryName() string
	Payload() T
}
