package config

import (
	"github.com/Gobusters/ectoenv"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName    string `env:"APP_NAME" env-default:"clover"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	PrettyLogs bool   `env:"PRETTY_LOGS" env-default:"false"`

	// PostgreSQL (contact store)
	DatabaseHost                string `env:"DB_HOST" env-default:"localhost"`
	DatabasePort                int    `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName            string `env:"DB_USER_NAME" env-default:"postgres"`
	DatabasePassword            string `env:"DB_PASSWORD" env-default:""`
	DatabaseName                string `env:"DB_NAME" env-default:"clover"`
	DatabaseSSLMode             string `env:"DB_SSL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns        int    `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns        int    `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseMigrationFolderPath string `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationVersion    int    `env:"DB_MIGRATION_VERSION" env-default:"0"`

	// Kafka producer (contact lifecycle events)
	KafkaEnabled      bool     `env:"KAFKA_ENABLED" env-default:"false"`
	KafkaBrokers      []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaContactTopic string   `env:"KAFKA_CONTACT_TOPIC" env-default:"contact-events"`
	KafkaGroupTopic   string   `env:"KAFKA_GROUP_TOPIC" env-default:"contact-group-events"`
	KafkaBatchSize    int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression  string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" env-default:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" env-default:"localhost:4317"`
	OTLPProtocol   string `env:"OTLP_PROTOCOL" env-default:"grpc"`
	OTLPInsecure   bool   `env:"OTLP_INSECURE" env-default:"true"`
	TracingService string `env:"TRACING_SERVICE_NAME" env-default:"clover"`

	// Engine
	MaxPageSize        int    `env:"MAX_PAGE_SIZE" env-default:"500"`
	DefaultContainerID string `env:"DEFAULT_CONTAINER_ID" env-default:"default"`
}

// Load reads .env when present and binds environment variables onto a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
