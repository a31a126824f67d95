package infrastructure

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey é a chave de contexto lida pelo adaptador de log.
const RequestIDKey contextKey = "requestID"

func GenerateUUID() string {
	return uuid.New().String()
}

// WithRequestID anexa um id de requisição ao contexto, gerando um novo quando vazio.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if requestID == "" {
		requestID = GenerateUUID()
	}
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// RequestIDFrom devolve o id de requisição do contexto, se houver.
func RequestIDFrom(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	return requestID, ok
}
