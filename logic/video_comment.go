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

func CreateVideoComment(ctx context.Context, param *models.ParamCreateComment) (int64, error) {
	if strs.IsBlank(param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.VideoRepository.Get(db, param.ParentId) == nil {
		return 0, ERROR_VIDEO_NOT_EXISTS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	comment := &models.VideoComment{
		CommentId:   snowflake.GenID(),
		VideoId:     param.ParentId,
		AuthorId:    param.AuthorId,
		Description: param.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = mysql_repo.VideoCommentRepository.Create(db, comment); err != nil {
		zap.L().Error("create video comment failed", zap.Int64("videoId", param.ParentId), zap.Error(err))
		return 0, err
	}

	snap := models.CommentSnapshot{
		CommentId:   comment.CommentId,
		ParentId:    comment.VideoId,
		AuthorId:    comment.AuthorId,
		AuthorName:  author.Username,
		Description: comment.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = videoComments.Append(ctx, comment.VideoId, snap); err != nil {
		zap.L().Warn("video comment page append failed", zap.Int64("videoId", comment.VideoId), zap.Error(err))
	}
	return comment.CommentId, nil
}

func GetVideoCommentPage(ctx context.Context, videoId int64, page int, viewer models.Viewer) (*models.ListData[models.CommentDetail], error) {
	snaps, stats, hasMore, err := videoComments.GetPage(ctx, videoId, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.CommentDetail]{Data: zipCommentDetails(snaps, stats), HasMore: hasMore}, nil
}

func LikeVideoComment(ctx context.Context, commentId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.VideoCommentRepository.Get(db, commentId) == nil {
		return ERROR_COMMENT_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, commentId, models.TargetVideoComment)
}

func DeleteVideoComment(ctx context.Context, commentId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	comment := mysql_repo.VideoCommentRepository.Get(db, commentId)
	if comment == nil {
		return ERROR_COMMENT_NOT_EXISTS
	}
	if comment.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_COMMENT_DELETE
	}
	replyIds := mysql_repo.VideoReplyRepository.ReplyIds(db, commentId)
	if err := mysql_repo.VideoCommentRepository.DeleteCommentInfo(db, commentId, replyIds); err != nil {
		zap.L().Error("delete video comment failed", zap.Int64("commentId", commentId), zap.Error(err))
		return err
	}
	if err := videoComments.Scrub(ctx, comment.VideoId); err != nil {
		zap.L().Warn("video comment page scrub failed", zap.Int64("videoId", comment.VideoId), zap.Error(err))
	}
	if err := videoReplies.Scrub(ctx, commentId); err != nil {
		zap.L().Warn("video reply page scrub failed", zap.Int64("commentId", commentId), zap.Error(err))
	}
	return nil
}

func CreateVideoReply(ctx context.Context, param *models.ParamCreateComment) (int64, error) {
	if strs.IsBlank(param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	db := sqls.DB().WithContext(ctx)
	comment := mysql_repo.VideoCommentRepository.Get(db, param.ParentId)
	if comment == nil {
		return 0, ERROR_COMMENT_NOT_EXISTS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	reply := &models.VideoReply{
		ReplyId:     snowflake.GenID(),
		CommentId:   comment.CommentId,
		VideoId:     comment.VideoId,
		AuthorId:    param.AuthorId,
		Description: param.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = mysql_repo.VideoReplyRepository.Create(db, reply); err != nil {
		zap.L().Error("create video reply failed", zap.Int64("commentId", comment.CommentId), zap.Error(err))
		return 0, err
	}

	snap := models.CommentSnapshot{
		CommentId:   reply.ReplyId,
		ParentId:    reply.CommentId,
		AuthorId:    reply.AuthorId,
		AuthorName:  author.Username,
		Description: reply.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = videoReplies.Append(ctx, reply.CommentId, snap); err != nil {
		zap.L().Warn("video reply page append failed", zap.Int64("commentId", reply.CommentId), zap.Error(err))
	}
	return reply.ReplyId, nil
}

func GetVideoReplyPage(ctx context.Context, commentId int64, page int, viewer models.Viewer) (*models.ListData[models.CommentDetail], error) {
	snaps, stats, hasMore, err := videoReplies.GetPage(ctx, commentId, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.CommentDetail]{Data: zipCommentDetails(snaps, stats), HasMore: hasMore}, nil
}

func LikeVideoReply(ctx context.Context, replyId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.VideoReplyRepository.Get(db, replyId) == nil {
		return ERROR_REPLY_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, replyId, models.TargetVideoReply)
}

func DeleteVideoReply(ctx context.Context, replyId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	reply := mysql_repo.VideoReplyRepository.Get(db, replyId)
	if reply == nil {
		return ERROR_REPLY_NOT_EXISTS
	}
	if reply.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_REPLY_DELETE
	}
	if err := mysql_repo.VideoReplyRepository.DeleteReplyInfo(db, replyId); err != nil {
		zap.L().Error("delete video reply failed", zap.Int64("replyId", replyId), zap.Error(err))
		return err
	}
	if err := videoReplies.Scrub(ctx, reply.CommentId); err != nil {
		zap.L().Warn("video reply page scrub failed", zap.Int64("commentId", reply.CommentId), zap.Error(err))
	}
	return nil
}
