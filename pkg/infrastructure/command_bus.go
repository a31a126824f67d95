package infrastructure

import (
	"context"
	"errors"
	"sync"

	"github.com/mateusmacedo/go-fleet/pkg/application"
	"github.com/mateusmacedo/go-fleet/pkg/domain"
)

// ErrNoCommandHandler é retornado quando nenhum handler foi registrado para o comando.
var ErrNoCommandHandler = errors.New("no handler registered for command")

// simpleCommandBus executa o handler de forma síncrona, de modo que o chamador
// recebe o motivo exato de uma rejeição.
type simpleCommandBus[C domain.Command[D], D any] struct {
	handlers map[string]application.CommandHandler[C, D]
	mu       sync.RWMutex
	logger   application.AppLogger
}

func NewSimpleCommandBus[C domain.Command[D], D any](logger application.AppLogger) application.CommandBus[C, D] {
	return &simpleCommandBus[C, D]{
		handlers: make(map[string]application.CommandHandler[C, D]),
		logger:   logger,
	}
}

func (bus *simpleCommandBus[C, D]) RegisterHandler(commandName string, handler application.CommandHandler[C, D]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[commandName] = handler
}

func (bus *simpleCommandBus[C, D]) Dispatch(ctx context.Context, command C) error {
	bus.mu.RLock()
	handler, found := bus.handlers[command.CommandName()]
	bus.mu.RUnlock()

	if !found {
		application.LogError(ctx, bus.logger, "command dispatch failed", ErrNoCommandHandler, map[string]interface{}{
			"command_name": command.CommandName(),
		})
		return ErrNoCommandHandler
	}

	if err := handler.Handle(ctx, command); err != nil {
		application.LogDebug(ctx, bus.logger, "command rejected", map[string]interface{}{
			"command_name": command.CommandName(),
			"reason":       err.Error(),
		})
		return err
	}

	application.LogDebug(ctx, bus.logger, "command handled", map[string]interface{}{
		"command_name": command.CommandName(),
	})
	return nil
}
