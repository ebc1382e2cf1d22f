package kafka_test

import (
	"context"
	"roombook/config"
	"roombook/infras/kafka"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
}

func TestMessageRoundTrip(t *testing.T) {
	message := kafka.Message{Key: "slot-1", Value: bookingEvent{Type: "booking.created", BookingID: "b-1"}}

	encoded, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("slot-1"), encoded.Key)
	assert.JSONEq(t, `{"type":"booking.created","booking_id":"b-1"}`, string(encoded.Value))

	decoded, err := kafka.DecodeKafkaMessage[bookingEvent](encoded)
	require.NoError(t, err)
	assert.Equal(t, "b-1", decoded.BookingID)

	_, err = kafka.DecodeKafkaMessage[bookingEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestToKafkaMessage_Unmarshalable(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNew_DisabledIsNoop(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg)

	assert.NoError(t, client.SendMessages(context.Background(), kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
