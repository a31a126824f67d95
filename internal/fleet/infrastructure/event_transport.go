package infrastructure

import (
	"fmt"
	"os"

	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-fleet/internal/config"
	"github.com/mateusmacedo/go-fleet/internal/fleet/application"
	pkgApp "github.com/mateusmacedo/go-fleet/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-fleet/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-fleet/pkg/infrastructure"
	channelsAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/channels/adapter"
	kafkaAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/kafka/adapter"
	rabbitAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/rabbitmq/adapter"
	redisAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/redis/adapter"
	watermillLogAdapter "github.com/mateusmacedo/go-fleet/pkg/infrastructure/watermill/adapter"
)

// EventTransport agrupa o barramento de eventos escolhido e os recursos que
// precisam ser fechados no encerramento.
type EventTransport struct {
	Bus     application.FleetEventBus
	closers []func() error
}

func (t *EventTransport) Close() error {
	var errs error
	for i := len(t.closers) - 1; i >= 0; i-- {
		errs = multierr.Append(errs, t.closers[i]())
	}
	return errs
}

func NewEventTransport(cfg config.EventsConfig, logger pkgApp.AppLogger) (*EventTransport, error) {
	wmLogger := watermillLogAdapter.NewWatermillLoggerAdapter(logger)

	switch cfg.Transport {
	case "", "memory":
		return &EventTransport{
			Bus: pkgInfra.NewSimpleEventBus[pkgDomain.Event[application.FleetEvent], application.FleetEvent](logger),
		}, nil

	case "channel":
		pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		return &EventTransport{
			Bus:     channelsAdapter.NewWatermillEventBus[pkgDomain.Event[application.FleetEvent], application.FleetEvent](pubSub, logger),
			closers: []func() error{pubSub.Close},
		}, nil

	case "redis":
		return newRedisTransport(cfg.Redis, logger, wmLogger)

	case "kafka":
		return newKafkaTransport(cfg.Kafka, logger, wmLogger)

	case "rabbitmq":
		conn, err := rabbitAdapter.Dial(rabbitAdapter.Config{URL: cfg.RabbitMQ.URL, Exchange: cfg.RabbitMQ.Exchange})
		if err != nil {
			return nil, err
		}
		bus, err := rabbitAdapter.NewAMQPEventBus[pkgDomain.Event[application.FleetEvent], application.FleetEvent](conn, cfg.RabbitMQ.Exchange, logger)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return &EventTransport{Bus: bus, closers: []func() error{conn.Close, bus.Close}}, nil
	}

	return nil, fmt.Errorf("unknown event transport %q", cfg.Transport)
}

func newRedisTransport(cfg config.RedisConfig, logger pkgApp.AppLogger, wmLogger watermill.LoggerAdapter) (*EventTransport, error) {
	client := redisAdapter.NewRedisClient(redisAdapter.ClientConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	transport := &EventTransport{closers: []func() error{client.Close}}

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{Client: client}, wmLogger)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("redis publisher: %w", err), transport.Close())
	}
	transport.closers = append(transport.closers, publisher.Close)

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        client,
		ConsumerGroup: cfg.ConsumerGroup,
		Consumer:      consumerName(),
	}, wmLogger)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("redis subscriber: %w", err), transport.Close())
	}
	transport.closers = append(transport.closers, subscriber.Close)

	transport.Bus = redisAdapter.NewRedisEventBus[pkgDomain.Event[application.FleetEvent], application.FleetEvent](publisher, subscriber, logger)
	return transport, nil
}

func newKafkaTransport(cfg config.KafkaConfig, logger pkgApp.AppLogger, wmLogger watermill.LoggerAdapter) (*EventTransport, error) {
	marshaler := kafka.DefaultMarshaler{}
	transport := &EventTransport{}

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.Brokers,
		Marshaler: marshaler,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	transport.closers = append(transport.closers, publisher.Close)

	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = "go-fleet"

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               cfg.Brokers,
		Unmarshaler:           marshaler,
		ConsumerGroup:         cfg.ConsumerGroup,
		OverwriteSaramaConfig: saramaConfig,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}, wmLogger)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("kafka subscriber: %w", err), transport.Close())
	}
	transport.closers = append(transport.closers, subscriber.Close)

	for _, name := range application.FleetEventNames() {
		if err := subscriber.SubscribeInitialize(name); err != nil {
			return nil, multierr.Append(fmt.Errorf("initialize topic %s: %w", name, err), transport.Close())
		}
	}

	transport.Bus = kafkaAdapter.NewKafkaEventBus[pkgDomain.Event[application.FleetEvent], application.FleetEvent](publisher, subscriber, logger)
	return transport, nil
}

func consumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "fleet"
	}
	return host + "-" + pkgInfra.GenerateUUID()[:8]
}
