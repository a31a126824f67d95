package domain

// Command representa uma intenção de alterar o estado da frota.
// O nome é usado pelo barramento para localizar o handler registrado.
type Command[T any] interface {
	CommandName() string
	Payload() T
}
