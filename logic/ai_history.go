package logic

import (
	"context"
	"time"

	"studyhub/dao/mysql_repo"
	"studyhub/dao/redis_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"
	"studyhub/pkg/strs"

	"go.uber.org/zap"
)

// Oldest entries fall off the cached list past this length; the store
// keeps the full history.
const maxAiHistoryLen = 100

// AppendAiHistory persists one Q&A turn and appends it to the user's
// cached history list so the next read needs no store round trip.
func AppendAiHistory(ctx context.Context, userId int64, question, answer string) error {
	if strs.AnyBlank(question, answer) {
		return ERROR_MISSING_FIELDS
	}
	if _, err := authorOf(userId); err != nil {
		return err
	}
	now := time.Now()
	row := &models.AiHistory{
		HistoryId:  snowflake.GenID(),
		UserId:     userId,
		Question:   question,
		Answer:     answer,
		CreateTime: now,
	}
	if err := mysql_repo.AiHistoryRepository.Create(sqls.DB().WithContext(ctx), row); err != nil {
		zap.L().Error("create ai history failed", zap.Int64("userId", userId), zap.Error(err))
		return err
	}
	entry := models.AiHistoryEntry{Question: question, Answer: answer, CreateTime: now}
	if err := store.AppendList(ctx, redis_repo.AiHistoryKey(userId), entry, redis_repo.HistoryTTL(), maxAiHistoryLen); err != nil {
		zap.L().Warn("ai history cache append failed", zap.Int64("userId", userId), zap.Error(err))
	}
	return nil
}

func GetAiHistory(ctx context.Context, userId int64) ([]models.AiHistoryEntry, error) {
	key := redis_repo.AiHistoryKey(userId)
	var entries []models.AiHistoryEntry
	hit, err := store.GetJSON(ctx, key, &entries)
	if err != nil {
		zap.L().Warn("ai history cache read failed, falling back to store", zap.Int64("userId", userId), zap.Error(err))
	} else if hit {
		return entries, nil
	}

	// Newest window first, then flipped to chronological order so the
	// rebuild matches what the append path keeps after trimming.
	rows := mysql_repo.AiHistoryRepository.Find(sqls.DB().WithContext(ctx),
		sqls.NewCnd().Eq("user_id", userId).Desc("create_time").Desc("id").Limit(maxAiHistoryLen))
	entries = historyEntries(rows)
	if len(entries) > 0 {
		if err = store.SetJSON(ctx, key, entries, redis_repo.HistoryTTL()); err != nil {
			zap.L().Warn("ai history cache write failed", zap.Int64("userId", userId), zap.Error(err))
		}
	}
	return entries, nil
}

// historyEntries converts newest-first rows into oldest-first entries.
func historyEntries(rows []models.AiHistory) []models.AiHistoryEntry {
	entries := make([]models.AiHistoryEntry, len(rows))
	for i, row := range rows {
		entries[len(rows)-1-i] = models.AiHistoryEntry{
			Question:   row.Question,
			Answer:     row.Answer,
			CreateTime: row.CreateTime,
		}
	}
	return entries
}
