package logic

import (
	"context"
	"time"

	"studyhub/dao/mysql_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"
	"studyhub/pkg/strs"

	"go.uber.org/zap"
)

func CreateFeedback(ctx context.Context, param *models.ParamCreateFeedback) (int64, error) {
	if strs.IsBlank(param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	if _, err := authorOf(param.UserId); err != nil {
		return 0, err
	}
	feedback := &models.Feedback{
		FeedbackId:  snowflake.GenID(),
		UserId:      param.UserId,
		Description: param.Description,
		Contact:     param.Contact,
		CreateTime:  time.Now(),
	}
	if err := mysql_repo.FeedbackRepository.Create(sqls.DB().WithContext(ctx), feedback); err != nil {
		zap.L().Error("create feedback failed", zap.Int64("userId", param.UserId), zap.Error(err))
		return 0, err
	}
	return feedback.FeedbackId, nil
}

func GetFeedbackPage(ctx context.Context, page, size int) []models.Feedback {
	return mysql_repo.FeedbackRepository.Find(sqls.DB().WithContext(ctx),
		sqls.NewCnd().Desc("create_time").Desc("id").Page(page, size))
}
