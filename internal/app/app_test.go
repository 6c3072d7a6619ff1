package app

import (
	"context"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/clover/config"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestNewTracerProviderDisabled(t *testing.T) {
	tp, err := newTracerProvider(context.Background(), &config.Config{TracingEnabled: false})
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestNewTracerProviderRejectsUnknownProtocol(t *testing.T) {
	_, err := newTracerProvider(context.Background(), &config.Config{
		TracingEnabled: true,
		OTLPEndpoint:   "localhost:4317",
		OTLPProtocol:   "carrier-pigeon",
	})
	require.Error(t, err)
}

func TestNewEmitterDisabled(t *testing.T) {
	producer, emitter := newEmitter(&config.Config{KafkaEnabled: false}, testLogger())
	assert.Nil(t, producer)
	assert.Nil(t, emitter)
}

func TestNewEmitterEnabled(t *testing.T) {
	producer, emitter := newEmitter(&config.Config{
		KafkaEnabled:      true,
		KafkaBrokers:      []string{"localhost:9092"},
		KafkaContactTopic: "contact-events",
		KafkaGroupTopic:   "contact-group-events",
	}, testLogger())
	require.NotNil(t, producer)
	require.NotNil(t, emitter)
	assert.NoError(t, producer.Close())
}
