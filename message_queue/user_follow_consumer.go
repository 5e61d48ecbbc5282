package message_queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyhub/cache"
	"studyhub/dao/mysql_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"
	"studyhub/settings"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var MYSQL_WRITE_ERROR = errors.New("mysql write error")

// UserFollowProcessor drains the follow topic in batches: up to
// batchSize events, or whatever accumulated when the ticker fires.
// Batches that exhaust their retries go to the dead letter channel for a
// final attempt.
type UserFollowProcessor struct {
	kafkaReader     *kafka.Reader
	messages        chan kafka.Message
	deadLetterQueue chan []UserFollowEvent
	maxRetries      int
	batchSize       int
	maxWait         time.Duration
}

func NewUserFollowProcessor(brokers []string, topic string, maxRetries int) *UserFollowProcessor {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		Topic:       topic,
		GroupID:     "user_follow_event_consumer_group",
		StartOffset: kafka.FirstOffset,
		MinBytes:    10e3, // 10KB
		MaxBytes:    10e6, // 10MB
	})

	batchSize := 10
	maxWait := 10 * time.Second
	if cfg := settings.GlobalSettings.MQCfg; cfg != nil {
		if cfg.MaxBatchSize > 0 {
			batchSize = cfg.MaxBatchSize
		}
		if cfg.MaxWaitingTime > 0 {
			maxWait = time.Duration(cfg.MaxWaitingTime) * time.Second
		}
	}

	return &UserFollowProcessor{
		kafkaReader:     reader,
		messages:        make(chan kafka.Message),
		deadLetterQueue: make(chan []UserFollowEvent, 100),
		maxRetries:      maxRetries,
		batchSize:       batchSize,
		maxWait:         maxWait,
	}
}

func (lp *UserFollowProcessor) Start(ctx context.Context) {
	go lp.consumeMessages(ctx)
	go lp.processFollows(ctx)
	go lp.handleDeadLetters(ctx)

	<-ctx.Done()
	lp.kafkaReader.Close()
}

func (lp *UserFollowProcessor) consumeMessages(ctx context.Context) {
	for {
		msg, err := lp.kafkaReader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			zap.L().Info(fmt.Sprintf("failed to read message: %v", err))
			continue
		}
		lp.messages <- msg
	}
}

func (lp *UserFollowProcessor) processFollows(ctx context.Context) {
	var eventList []UserFollowEvent
	var msgs []kafka.Message
	ticker := time.NewTicker(lp.maxWait)
	defer ticker.Stop()

	flush := func() {
		if len(eventList) == 0 {
			return
		}
		if err := lp.persistBatch(eventList); err != nil {
			zap.L().Info(fmt.Sprintf("failed to persist follow batch: %v, moving to dead letter queue", err))
			lp.deadLetterQueue <- eventList
		}
		commitMessages(lp.kafkaReader, msgs)
		eventList = nil
		msgs = nil
	}

	for {
		select {
		case msg := <-lp.messages:
			msgs = append(msgs, msg)
			var event UserFollowEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				zap.L().Info(fmt.Sprintf("failed to unmarshal message: %v", err))
				continue
			}
			eventList = append(eventList, event)
			if len(eventList) >= lp.batchSize {
				flush()
			}

		case <-ticker.C:
			flush()

		case <-ctx.Done():
			return
		}
	}
}

// persistBatch lands a batch in mysql with retries and then reconciles
// the fan counters from the store. The producer already moved the
// counters optimistically at send time, so the consumer must not apply
// the same deltas again; it overwrites with the authoritative counts.
func (lp *UserFollowProcessor) persistBatch(events []UserFollowEvent) error {
	ops := toOperations(events)
	var err error
	for i := 0; i <= lp.maxRetries; i++ {
		err = mysql_repo.FollowRepository.BatchApply(sqls.DB(), ops, snowflake.GenID)
		if err == nil {
			lp.reconcileCounters(ops)
			return nil
		}
		zap.L().Info(fmt.Sprintf("persisting follow batch failed, retrying... (%d/%d): %v", i+1, lp.maxRetries, err))
		time.Sleep(100 * time.Millisecond)
	}
	zap.L().Error(fmt.Sprintf("max retries reached for batch: %v", events), zap.Error(MYSQL_WRITE_ERROR))
	return MYSQL_WRITE_ERROR
}

// reconcileCounters reseeds the fan count of every target touched by the
// batch from the store.
func (lp *UserFollowProcessor) reconcileCounters(ops []models.FollowOperation) {
	seen := make(map[int64]struct{}, len(ops))
	for _, op := range ops {
		if _, ok := seen[op.TargetUserId]; ok {
			continue
		}
		seen[op.TargetUserId] = struct{}{}
		count := mysql_repo.FollowRepository.CountFans(sqls.DB(), op.TargetUserId)
		cache.Follows().SeedFans(op.TargetUserId, count)
	}
}

func (lp *UserFollowProcessor) handleDeadLetters(ctx context.Context) {
	for {
		select {
		case events := <-lp.deadLetterQueue:
			zap.L().Info(fmt.Sprintf("handling dead letter batch: %+v", events))
			if err := lp.persistBatch(events); err != nil {
				// TODO: park exhausted batches in a retry table instead of dropping them.
				zap.L().Error("final attempt to persist follow batch failed", zap.Error(err))
			}
		case <-ctx.Done():
			return
		}
	}
}

func toOperations(events []UserFollowEvent) []models.FollowOperation {
	ops := make([]models.FollowOperation, len(events))
	for i, event := range events {
		ops[i].UserId = event.UserId
		ops[i].TargetUserId = event.TargetUserId
		if event.Action == "follow" {
			ops[i].Action = 1
		}
	}
	return ops
}
