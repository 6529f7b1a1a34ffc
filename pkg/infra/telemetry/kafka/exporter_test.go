package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/NeuralTrust/TMSHarness/pkg/domain/record"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProducer struct {
	produced   []*kafka.Message
	produceErr error
	deliverErr error
	closed     bool
}

func (f *fakeProducer) Produce(msg *kafka.Message, deliveryChan chan kafka.Event) error {
	if f.produceErr != nil {
		return f.produceErr
	}
	f.produced = append(f.produced, msg)
	delivered := *msg
	delivered.TopicPartition.Error = f.deliverErr
	deliveryChan <- &delivered
	return nil
}

func (f *fakeProducer) Flush(int) int { return 0 }

func (f *fakeProducer) Close() { f.closed = true }

func TestExporter_ValidateConfig(t *testing.T) {
	tests := []struct {
		name     string
		settings map[string]interface{}
		wantErr  string
	}{
		{name: "valid", settings: map[string]interface{}{"host": "localhost", "port": "9092", "topic": "records"}},
		{name: "missing host", settings: map[string]interface{}{"port": "9092", "topic": "records"}, wantErr: "kafka host is required"},
		{name: "missing port", settings: map[string]interface{}{"host": "localhost", "topic": "records"}, wantErr: "kafka port is required"},
		{name: "missing topic", settings: map[string]interface{}{"host": "localhost", "port": "9092"}, wantErr: "kafka topic is required"},
		{name: "wrong type", settings: map[string]interface{}{"host": []int{1}}, wantErr: "invalid kafka config"},
	}

	exporter := NewKafkaExporter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exporter.ValidateConfig(tt.settings)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExporter_Export(t *testing.T) {
	prod := &fakeProducer{}
	exporter := &Exporter{cfg: Config{Topic: "records"}, producer: prod}

	rec := record.TestRecord{Type: "pacs.008", Status: 200, Success: true, MessageID: "MSG-1"}
	require.NoError(t, exporter.Export(context.Background(), rec))

	require.Len(t, prod.produced, 1)
	msg := prod.produced[0]
	assert.Equal(t, "records", *msg.TopicPartition.Topic)
	assert.Equal(t, []byte("MSG-1"), msg.Key)

	var got record.TestRecord
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, rec, got)

	exporter.Close()
	assert.True(t, prod.closed)
}

func TestExporter_ExportErrors(t *testing.T) {
	rec := record.TestRecord{MessageID: "MSG-2"}

	err := NewKafkaExporter().Export(context.Background(), rec)
	assert.ErrorIs(t, err, ErrProducerNotInitialized)

	produceErr := errors.New("queue full")
	exporter := &Exporter{cfg: Config{Topic: "records"}, producer: &fakeProducer{produceErr: produceErr}}
	err = exporter.Export(context.Background(), rec)
	assert.ErrorIs(t, err, produceErr)

	deliverErr := errors.New("broker down")
	exporter = &Exporter{cfg: Config{Topic: "records"}, producer: &fakeProducer{deliverErr: deliverErr}}
	err = exporter.Export(context.Background(), rec)
	assert.ErrorIs(t, err, deliverErr)
}
