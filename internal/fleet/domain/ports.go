package domain

import "context"

// Record é qualquer registro identificado por uma chave textual única.
type Record interface {
	Key() string
}

// Lookup é a visão somente leitura usada para resolver referências fracas por id.
type Lookup interface {
	Exists(id string) bool
}

// RecordStore carrega e reescreve por completo a coleção persistida de T.
type RecordStore[T any] interface {
	Load(ctx context.Context) ([]T, error)
	Save(ctx context.Context, records []T) error
}

type DayOffRepository interface {
	Append(ctx context.Context, request DayOffRequest) error
	List(ctx context.Context) ([]DayOffRequest, error)
}
