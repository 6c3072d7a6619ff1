// Package app wires the engine from configuration: tracing, the postgres
// directory with migrations applied, optional kafka event emission, and the
// contacts service on top.
package app

import (
	"context"
	"time"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Ramsey-B/clover/config"
	"github.com/Ramsey-B/clover/internal/platform/database"
	"github.com/Ramsey-B/clover/internal/platform/tracing"
	"github.com/Ramsey-B/clover/internal/platform/tracing/exporters"
	"github.com/Ramsey-B/clover/pkg/contacts"
	"github.com/Ramsey-B/clover/pkg/directory/postgres"
	"github.com/Ramsey-B/clover/pkg/events"
	"github.com/Ramsey-B/clover/pkg/kafka"
)

// App holds the wired engine and the handles it must close on shutdown.
type App struct {
	Service   *contacts.Service
	Directory *postgres.Directory

	db       database.DB
	producer *kafka.Producer
	tracer   *sdktrace.TracerProvider
	logger   ectologger.Logger
}

// New assembles an App from cfg. The database connection is opened and
// migrated eagerly; kafka and tracing are wired only when enabled.
func New(ctx context.Context, cfg *config.Config, logger ectologger.Logger) (*App, error) {
	tp, err := newTracerProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(ctx, database.Config{
		Host:         cfg.DatabaseHost,
		Port:         cfg.DatabasePort,
		User:         cfg.DatabaseUserName,
		Password:     cfg.DatabasePassword,
		Name:         cfg.DatabaseName,
		SSLMode:      cfg.DatabaseSSLMode,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
		MaxIdleConns: cfg.DatabaseMaxIdleConns,
	}, logger)
	if err != nil {
		return nil, err
	}

	dir := postgres.New(db, logger)
	if err := dir.MigrateUp(cfg.DatabaseMigrationFolderPath); err != nil {
		db.Close()
		return nil, err
	}

	producer, emitter := newEmitter(cfg, logger)
	svc := contacts.NewService(logger, dir, emitter, contacts.Config{MaxPageSize: cfg.MaxPageSize})

	return &App{
		Service:   svc,
		Directory: dir,
		db:        db,
		producer:  producer,
		tracer:    tp,
		logger:    logger,
	}, nil
}

// Shutdown flushes tracing and closes the kafka and database handles.
func (a *App) Shutdown(ctx context.Context) error {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			a.logger.WithContext(ctx).WithError(err).Error("Failed to shut down tracer provider")
		}
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.WithContext(ctx).WithError(err).Error("Failed to close kafka producer")
		}
	}
	return a.db.Close()
}

// newTracerProvider registers the global tracer provider when tracing is
// enabled; otherwise spans stay no-ops.
func newTracerProvider(ctx context.Context, cfg *config.Config) (*sdktrace.TracerProvider, error) {
	if !cfg.TracingEnabled {
		return nil, nil
	}

	exporter, err := exporters.NewOTLPExporter(ctx, exporters.OTLPConfig{
		Endpoint: cfg.OTLPEndpoint,
		Protocol: cfg.OTLPProtocol,
		Insecure: cfg.OTLPInsecure,
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", cfg.TracingService),
		)),
	)
	otel.SetTracerProvider(tp)
	tracing.SetTracer(tp.Tracer(cfg.AppName))
	return tp, nil
}

// newEmitter builds the kafka producer and emitter when events are enabled.
// Both are nil otherwise; the service treats a nil emitter as events off.
func newEmitter(cfg *config.Config, logger ectologger.Logger) (*kafka.Producer, *events.Emitter) {
	if !cfg.KafkaEnabled {
		return nil, nil
	}

	producer := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:      cfg.KafkaBrokers,
		Topic:        cfg.KafkaContactTopic,
		GroupTopic:   cfg.KafkaGroupTopic,
		BatchSize:    cfg.KafkaBatchSize,
		BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
		RequiredAcks: cfg.KafkaRequiredAcks,
		Compression:  cfg.KafkaCompression,
	}, logger)
	return producer, events.NewEmitter(producer, logger)
}
