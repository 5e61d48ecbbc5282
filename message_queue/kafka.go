package message_queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"studyhub/settings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// UserFollowEvent is the queued relation change. Action is "follow" or
// "none" (unfollow).
type UserFollowEvent struct {
	Action       string `json:"action"`
	UserId       int64  `json:"user_id"`
	TargetUserId int64  `json:"target_user_id"`
	Timestamp    string `json:"timestamp"`
}

var (
	UserFollowTopic      = "user-follow-events"
	UserFollowMaxRetries = 1

	ERROR_MQ_NOT_READY = errors.New("message queue not initialized")

	followWriter *kafka.Writer
)

func newFollowWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  UserFollowTopic,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           1 * time.Second,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func SendUserFollowEvent(ctx context.Context, message UserFollowEvent) (err error) {
	if followWriter == nil {
		return ERROR_MQ_NOT_READY
	}
	sendMsg, err := json.Marshal(message)
	if err != nil {
		return err
	}
	// Keyed by follower id so one user's ops stay on one partition, in order.
	for i := 0; i < 3; i++ {
		if err = followWriter.WriteMessages(
			ctx, kafka.Message{Key: []byte(strconv.FormatInt(message.UserId, 10)), Value: sendMsg}); err != nil {
			zap.L().Info("write kafka error, retrying...", zap.Error(err))
		} else {
			zap.L().Info(fmt.Sprintf("sent follow event, action = %s, user id = %d, target id = %d",
				message.Action, message.UserId, message.TargetUserId))
			break
		}
	}
	return err
}

// InitMQ builds the shared producer and starts the consumers. The writer
// lives for the process and is closed on shutdown.
func InitMQ(ctx context.Context, cfg *settings.MessageQueueConfig) {
	followWriter = newFollowWriter(cfg.Brokers)
	followProcessor := NewUserFollowProcessor(cfg.Brokers, UserFollowTopic, UserFollowMaxRetries)
	go followProcessor.Start(ctx)
	go func() {
		<-ctx.Done()
		followWriter.Close()
	}()
}

func commitMessages(reader *kafka.Reader, messages []kafka.Message) {
	err := reader.CommitMessages(context.Background(), messages...)
	if err != nil {
		zap.L().Error(fmt.Sprintf("failed to commit messages: %v", err))
		return
	}
	zap.L().Info(fmt.Sprintf("committed %d messages", len(messages)))
}
