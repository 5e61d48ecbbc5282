package logic

import (
	"context"
	"errors"
	"time"

	"studyhub/dao/mysql_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"
	"studyhub/pkg/strs"

	"go.uber.org/zap"
)

var (
	ERROR_COMMENT_NOT_EXISTS     = errors.New("Comment not found")
	ERROR_REPLY_NOT_EXISTS       = errors.New("Reply not found")
	ERROR_ILLEGAL_COMMENT_DELETE = errors.New("can not delete other's comment")
	ERROR_ILLEGAL_REPLY_DELETE   = errors.New("can not delete other's reply")
)

// CreateForumComment inserts the comment and appends its snapshot into
// the current last cached page under the forum, so readers see it without
// a page rebuild.
func CreateForumComment(ctx context.Context, param *models.ParamCreateComment) (int64, error) {
	if strs.IsBlank(param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.ForumRepository.Get(db, param.ParentId) == nil {
		return 0, ERROR_FORUM_NOT_EXISTS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	comment := &models.ForumComment{
		CommentId:   snowflake.GenID(),
		ForumId:     param.ParentId,
		AuthorId:    param.AuthorId,
		Description: param.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = mysql_repo.ForumCommentRepository.Create(db, comment); err != nil {
		zap.L().Error("create forum comment failed", zap.Int64("forumId", param.ParentId), zap.Error(err))
		return 0, err
	}

	snap := models.CommentSnapshot{
		CommentId:   comment.CommentId,
		ParentId:    comment.ForumId,
		AuthorId:    comment.AuthorId,
		AuthorName:  author.Username,
		Description: comment.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = forumComments.Append(ctx, comment.ForumId, snap); err != nil {
		zap.L().Warn("forum comment page append failed", zap.Int64("forumId", comment.ForumId), zap.Error(err))
	}
	return comment.CommentId, nil
}

func GetForumCommentPage(ctx context.Context, forumId int64, page int, viewer models.Viewer) (*models.ListData[models.CommentDetail], error) {
	snaps, stats, hasMore, err := forumComments.GetPage(ctx, forumId, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.CommentDetail]{Data: zipCommentDetails(snaps, stats), HasMore: hasMore}, nil
}

func LikeForumComment(ctx context.Context, commentId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.ForumCommentRepository.Get(db, commentId) == nil {
		return ERROR_COMMENT_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, commentId, models.TargetForumComment)
}

// DeleteForumComment scrubs the whole comment namespace under the forum:
// removing an entry shifts every later page, so patching a single cached
// page would leave torn neighbors.
func DeleteForumComment(ctx context.Context, commentId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	comment := mysql_repo.ForumCommentRepository.Get(db, commentId)
	if comment == nil {
		return ERROR_COMMENT_NOT_EXISTS
	}
	if comment.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_COMMENT_DELETE
	}
	replyIds := mysql_repo.ForumReplyRepository.ReplyIds(db, commentId)
	if err := mysql_repo.ForumCommentRepository.DeleteCommentInfo(db, commentId, replyIds); err != nil {
		zap.L().Error("delete forum comment failed", zap.Int64("commentId", commentId), zap.Error(err))
		return err
	}
	if err := forumComments.Scrub(ctx, comment.ForumId); err != nil {
		zap.L().Warn("forum comment page scrub failed", zap.Int64("forumId", comment.ForumId), zap.Error(err))
	}
	if err := forumReplies.Scrub(ctx, commentId); err != nil {
		zap.L().Warn("forum reply page scrub failed", zap.Int64("commentId", commentId), zap.Error(err))
	}
	return nil
}

func CreateForumReply(ctx context.Context, param *models.ParamCreateComment) (int64, error) {
	if strs.IsBlank(param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	db := sqls.DB().WithContext(ctx)
	comment := mysql_repo.ForumCommentRepository.Get(db, param.ParentId)
	if comment == nil {
		return 0, ERROR_COMMENT_NOT_EXISTS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	reply := &models.ForumReply{
		ReplyId:     snowflake.GenID(),
		CommentId:   comment.CommentId,
		ForumId:     comment.ForumId,
		AuthorId:    param.AuthorId,
		Description: param.Description,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = mysql_repo.ForumReplyRepository.Create(db, reply); err != nil {
		zap.L().Error("create forum reply failed", zap.Int64("commentId", comment.CommentId), zap.Error(err))
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
	if err = forumReplies.Append(ctx, reply.CommentId, snap); err != nil {
		zap.L().Warn("forum reply page append failed", zap.Int64("commentId", reply.CommentId), zap.Error(err))
	}
	return reply.ReplyId, nil
}

func GetForumReplyPage(ctx context.Context, commentId int64, page int, viewer models.Viewer) (*models.ListData[models.CommentDetail], error) {
	snaps, stats, hasMore, err := forumReplies.GetPage(ctx, commentId, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.CommentDetail]{Data: zipCommentDetails(snaps, stats), HasMore: hasMore}, nil
}

func LikeForumReply(ctx context.Context, replyId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.ForumReplyRepository.Get(db, replyId) == nil {
		return ERROR_REPLY_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, replyId, models.TargetForumReply)
}

func DeleteForumReply(ctx context.Context, replyId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	reply := mysql_repo.ForumReplyRepository.Get(db, replyId)
	if reply == nil {
		return ERROR_REPLY_NOT_EXISTS
	}
	if reply.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_REPLY_DELETE
	}
	if err := mysql_repo.ForumReplyRepository.DeleteReplyInfo(db, replyId); err != nil {
		zap.L().Error("delete forum reply failed", zap.Int64("replyId", replyId), zap.Error(err))
		return err
	}
	if err := forumReplies.Scrub(ctx, reply.CommentId); err != nil {
		zap.L().Warn("forum reply page scrub failed", zap.Int64("commentId", reply.CommentId), zap.Error(err))
	}
	return nil
}

func zipCommentDetails(snaps []models.CommentSnapshot, stats map[int64]models.Stats) []models.CommentDetail {
	details := make([]models.CommentDetail, 0, len(snaps))
	for _, snap := range snaps {
		details = append(details, models.CommentDetail{CommentSnapshot: snap, Stats: stats[snap.CommentId]})
	}
	return details
}
