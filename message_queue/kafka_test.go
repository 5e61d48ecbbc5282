package message_queue

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFollowWriterConfig(t *testing.T) {
	w := newFollowWriter([]string{"broker-1:9092", "broker-2:9092"})
	defer w.Close()

	assert.Equal(t, UserFollowTopic, w.Topic)
	assert.Equal(t, kafka.RequireAll, w.RequiredAcks)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}

func TestSendBeforeInitFails(t *testing.T) {
	prev := followWriter
	followWriter = nil
	defer func() { followWriter = prev }()

	err := SendUserFollowEvent(context.Background(), UserFollowEvent{Action: "follow", UserId: 1, TargetUserId: 2})
	require.ErrorIs(t, err, ERROR_MQ_NOT_READY)
}
