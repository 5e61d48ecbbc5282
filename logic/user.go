package logic

import (
	"context"
	"errors"
	"time"

	"studyhub/cache"
	"studyhub/dao/mysql_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"
	"studyhub/pkg/strs"

	"go.uber.org/zap"
)

var ERROR_USERNAME_TAKEN = errors.New("username already taken")

func RegisterUser(ctx context.Context, username, avatarUrl string) (int64, error) {
	if strs.IsBlank(username) {
		return 0, ERROR_MISSING_FIELDS
	}
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.UserRepository.Take(db, "username = ?", username) != nil {
		return 0, ERROR_USERNAME_TAKEN
	}
	now := time.Now()
	user := &models.User{
		UserId:     snowflake.GenID(),
		Username:   username,
		AvatarUrl:  avatarUrl,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := mysql_repo.UserRepository.Create(db, user); err != nil {
		zap.L().Error("create user failed", zap.String("username", username), zap.Error(err))
		return 0, err
	}
	return user.UserId, nil
}

func GetUserById(ctx context.Context, userId int64) (*models.User, error) {
	return authorOf(userId)
}

// UpdateAvatar also drops the cached profile so snapshots built after
// this call pick up the new URL.
func UpdateAvatar(ctx context.Context, userId int64, avatarUrl string) error {
	if strs.IsBlank(avatarUrl) {
		return ERROR_MISSING_FIELDS
	}
	user, err := authorOf(userId)
	if err != nil {
		return err
	}
	if err = mysql_repo.UserRepository.UpdateColumn(sqls.DB().WithContext(ctx), user.UserId, "avatar_url", avatarUrl); err != nil {
		zap.L().Error("update avatar failed", zap.Int64("userId", userId), zap.Error(err))
		return err
	}
	cache.UserCache.Invalidate(userId)
	return nil
}
