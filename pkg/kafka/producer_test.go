package kafka

import (
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestNewProducerCompression(t *testing.T) {
	tests := []struct {
		name        string
		compression string
		want        kafkago.Compression
	}{
		{name: "default snappy", compression: "", want: kafkago.Snappy},
		{name: "gzip", compression: "gzip", want: kafkago.Gzip},
		{name: "lz4", compression: "lz4", want: kafkago.Lz4},
		{name: "zstd", compression: "zstd", want: kafkago.Zstd},
		{name: "none", compression: "none", want: 0},
		{name: "unknown falls back to snappy", compression: "brotli", want: kafkago.Snappy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProducer(ProducerConfig{
				Brokers:     []string{"localhost:9092"},
				Topic:       "contact-events",
				Compression: tt.compression,
			}, testLogger())
			defer p.Close()

			assert.Equal(t, tt.want, p.writer.Compression)
		})
	}
}

func TestNewProducerWriterSettings(t *testing.T) {
	p := NewProducer(ProducerConfig{
		Brokers:      []string{"broker-a:9092", "broker-b:9092"},
		Topic:        "contact-events",
		GroupTopic:   "contact-group-events",
		BatchSize:    250,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: -1,
	}, testLogger())

	assert.Equal(t, "contact-events", p.contactTopic)
	assert.Equal(t, "contact-group-events", p.groupTopic)
	assert.Equal(t, 250, p.writer.BatchSize)
	assert.Equal(t, 50*time.Millisecond, p.writer.BatchTimeout)
	assert.Equal(t, kafkago.RequireAll, p.writer.RequiredAcks)
	assert.True(t, p.writer.AllowAutoTopicCreation)

	require.NoError(t, p.Close())
}

func TestNewProducerGroupTopicFallsBackToTopic(t *testing.T) {
	p := NewProducer(ProducerConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "contact-events",
	}, testLogger())
	defer p.Close()

	assert.Equal(t, "contact-events", p.groupTopic)
}
