package logic

import (
	"context"
	"errors"
	"time"

	"studyhub/cache"
	"studyhub/dao/mysql_repo"
	"studyhub/message_queue"
	"studyhub/pkg/sqls"

	"go.uber.org/zap"
)

var ERROR_SELF_FOLLOW = errors.New("can not follow yourself")

// FollowUser records the relation change asynchronously: the event goes
// to the queue for batched persistence while the in-process counters move
// immediately so reads stay plausible before the consumer lands it.
func FollowUser(ctx context.Context, userId, targetUserId int64, follow bool) error {
	if userId == targetUserId {
		return ERROR_SELF_FOLLOW
	}
	if _, err := authorOf(targetUserId); err != nil {
		return err
	}
	action := "none"
	var delta int8
	if follow {
		action = "follow"
		delta = 1
	}
	event := message_queue.UserFollowEvent{
		Action:       action,
		UserId:       userId,
		TargetUserId: targetUserId,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	if err := message_queue.SendUserFollowEvent(ctx, event); err != nil {
		zap.L().Error("send user follow event failed", zap.Int64("userId", userId), zap.Error(err))
		return err
	}
	if err := cache.Follows().Apply(userId, targetUserId, delta); err != nil {
		zap.L().Warn("follow counter apply failed", zap.Int64("userId", userId), zap.Error(err))
	}
	return nil
}

// FansCount prefers the in-process counter and falls back to the store,
// seeding the counter on the way back.
func FansCount(ctx context.Context, userId int64) int64 {
	if count, ok := cache.Follows().Fans(userId); ok {
		return count
	}
	count := mysql_repo.FollowRepository.CountFans(sqls.DB().WithContext(ctx), userId)
	cache.Follows().SeedFans(userId, count)
	return count
}

func FollowingIds(ctx context.Context, userId int64) []int64 {
	return mysql_repo.FollowRepository.FollowingIds(sqls.DB().WithContext(ctx), userId)
}
