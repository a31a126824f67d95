package adapter

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/mateusmacedo/go-fleet/pkg/application"
	"github.com/mateusmacedo/go-fleet/pkg/domain"
)

// Config da conexão e do exchange topic usado para os eventos.
type Config struct {
	URL      string
	Exchange string
}

func Dial(cfg Config) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

// AMQPEventBus publica eventos num exchange topic usando o nome do evento como
// routing key. Cada nome registrado ganha uma fila exclusiva ligada ao exchange.
type AMQPEventBus[E domain.Event[D], D any] struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	handlers map[string][]application.EventHandler[E, D]
	mu       sync.RWMutex
	pubMu    sync.Mutex
	logger   application.AppLogger
}

func NewAMQPEventBus[E domain.Event[D], D any](conn *amqp.Connection, exchange string, logger application.AppLogger) (*AMQPEventBus[E, D], error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPEventBus[E, D]{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		handlers: make(map[string][]application.EventHandler[E, D]),
		logger:   logger,
	}, nil
}

func (bus *AMQPEventBus[E, D]) RegisterHandler(eventName string, handler application.EventHandler[E, D]) {
	bus.mu.Lock()
	_, subscribed := bus.handlers[eventName]
	bus.handlers[eventName] = append(bus.handlers[eventName], handler)
	bus.mu.Unlock()

	if subscribed {
		return
	}

	deliveries, err := bus.bind(eventName)
	if err != nil {
		application.LogError(context.Background(), bus.logger, "error subscribing to event", err, map[string]interface{}{
			"event_name": eventName,
			"exchange":   bus.exchange,
		})
		return
	}

	go func() {
		for d := range deliveries {
			bus.handleDelivery(context.Background(), eventName, d)
		}
	}()
}

func (bus *AMQPEventBus[E, D]) bind(eventName string) (<-chan amqp.Delivery, error) {
	ch, err := bus.conn.Channel()
	if err != nil {
		return nil, err
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return nil, err
	}

	if err := ch.QueueBind(q.Name, eventName, bus.exchange, false, nil); err != nil {
		return nil, err
	}

	return ch.Consume(q.Name, "", false, true, false, false, nil)
}

func (bus *AMQPEventBus[E, D]) handleDelivery(ctx context.Context, eventName string, d amqp.Delivery) {
	payload, err := application.UnmarshalPayload[D](d.Body)
	if err != nil {
		application.LogError(ctx, bus.logger, "error unmarshalling event payload", err, map[string]interface{}{
			"event_name": eventName,
		})
		_ = d.Nack(false, false)
		return
	}

	typedEvent, ok := interface{}(&dynamicEvent[D]{eventName: eventName, payload: payload}).(E)
	if !ok {
		application.LogError(ctx, bus.logger, "error casting event", nil, map[string]interface{}{
			"event_name": eventName,
		})
		_ = d.Nack(false, false)
		return
	}

	bus.mu.RLock()
	handlers := append([]application.EventHandler[E, D](nil), bus.handlers[eventName]...)
	bus.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler.Handle(ctx, typedEvent); err != nil {
			application.LogError(ctx, bus.logger, "error handling event", err, map[string]interface{}{
				"event_name": eventName,
			})
			_ = d.Nack(false, true)
			return
		}
	}

	_ = d.Ack(false)
}

func (bus *AMQPEventBus[E, D]) Publish(ctx context.Context, event E) error {
	body, err := application.MarshalPayload(event.Payload())
	if err != nil {
		return err
	}

	bus.pubMu.Lock()
	defer bus.pubMu.Unlock()

	err = bus.channel.PublishWithContext(ctx,
		bus.exchange,
		event.EventName(),
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		application.LogError(ctx, bus.logger, "error publishing event", err, map[string]interface{}{
			"event_name": event.EventName(),
			"exchange":   bus.exchange,
		})
		return err
	}
	return nil
}

func (bus *AMQPEventBus[E, D]) Close() error {
	return bus.channel.Close()
}

type dynamicEvent[D any] struct {
	eventName string
	payload   D
}

func (e *dynamicEvent[D]) EventName() string {
	return e.eventName
}

func (e *dynamicEvent[D]) Payload() D {
	return e.payload
}
