package domain

// IDGenerator gera identificadores para registros criados pelo sistema
// (pedidos de folga, ids de requisição).
type IDGenerator[T comparable] func() T
