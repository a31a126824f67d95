package config

import (
	"path/filepath"
	"time"
)

// DataConfig aponta os arquivos texto carregados na partida.
type DataConfig struct {
	Dir         string `yaml:"dir" validate:"required"`
	Buses       string `yaml:"buses" validate:"required"`
	Drivers     string `yaml:"drivers" validate:"required"`
	Routes      string `yaml:"routes" validate:"required"`
	Schedules   string `yaml:"schedules" validate:"required"`
	Credentials string `yaml:"credentials" validate:"required"`
	DayOff      string `yaml:"dayoff" validate:"required"`
}

// Path resolve um nome de arquivo relativo a Dir.
func (d DataConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(d.Dir, name)
}

type LoggingConfig struct {
	Level  string   `yaml:"level" validate:"oneof=debug info warn error"`
	Output []string `yaml:"output" validate:"min=1"`
}

type RedisConfig struct {
	Addr          string `yaml:"addr"`
	Password      string `yaml:"password"`
	DB            int    `yaml:"db" validate:"gte=0"`
	ConsumerGroup string `yaml:"consumerGroup"`
}

type KafkaConfig struct {
	Brokers       []string `yaml:"brokers"`
	ConsumerGroup string   `yaml:"consumerGroup"`
}

type RabbitMQConfig struct {
	URL      string `yaml:"url" validate:"omitempty,url"`
	Exchange string `yaml:"exchange"`
}

// EventsConfig escolhe o transporte dos eventos da frota.
type EventsConfig struct {
	Transport string         `yaml:"transport" validate:"oneof=memory channel redis kafka rabbitmq"`
	Redis     RedisConfig    `yaml:"redis"`
	Kafka     KafkaConfig    `yaml:"kafka"`
	RabbitMQ  RabbitMQConfig `yaml:"rabbitmq"`
}

type HTTPConfig struct {
	Addr           string        `yaml:"addr" validate:"required"`
	JWTSecret      string        `yaml:"jwtSecret" validate:"min=8"`
	TokenTTL       time.Duration `yaml:"tokenTTL" validate:"gt=0"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

type FleetConfig struct {
	// allow: remove registros referenciados por agendamentos; block: recusa.
	ReferentialPolicy string `yaml:"referentialPolicy" validate:"oneof=allow block"`
}

type Config struct {
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
	Events  EventsConfig  `yaml:"events"`
	HTTP    HTTPConfig    `yaml:"http"`
	Fleet   FleetConfig   `yaml:"fleet"`
}
