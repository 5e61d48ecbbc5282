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
	ERROR_FORUM_NOT_EXISTS     = errors.New("Forum not found")
	ERROR_ILLEGAL_FORUM_DELETE = errors.New("can not delete other's forum")
	ERROR_ILLEGAL_FORUM_EDIT   = errors.New("can not edit other's forum")
)

func CreateForum(ctx context.Context, param *models.ParamCreateForum) (int64, error) {
	if strs.AnyBlank(param.Title, param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	forum := &models.Forum{
		ForumId:     snowflake.GenID(),
		AuthorId:    param.AuthorId,
		Title:       param.Title,
		Description: param.Description,
		Topic:       param.Topic,
		CreateTime:  now,
		UpdateTime:  now,
	}
	db := sqls.DB().WithContext(ctx)
	if err = mysql_repo.ForumRepository.Create(db, forum); err != nil {
		zap.L().Error("create forum failed", zap.Error(err))
		return 0, err
	}
	refs, err := createMedia(db, forum.ForumId, models.TargetForum, param.Media)
	if err != nil {
		zap.L().Error("create forum media failed", zap.Int64("forumId", forum.ForumId), zap.Error(err))
		return 0, err
	}

	snap := models.ForumSnapshot{
		ForumId:     forum.ForumId,
		AuthorId:    forum.AuthorId,
		AuthorName:  author.Username,
		Title:       forum.Title,
		Description: forum.Description,
		Topic:       forum.Topic,
		Media:       refs,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = forumItems.Refresh(ctx, forum.ForumId, snap); err != nil {
		zap.L().Warn("eager forum snapshot write failed", zap.Int64("forumId", forum.ForumId), zap.Error(err))
	}
	return forum.ForumId, nil
}

func GetForumById(ctx context.Context, forumId int64, viewer models.Viewer) (*models.ForumDetail, error) {
	snap, stats, err := forumItems.GetById(ctx, forumId, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ForumDetail{ForumSnapshot: *snap, Stats: stats}, nil
}

func GetForumPage(ctx context.Context, page int, viewer models.Viewer) (*models.ListData[models.ForumDetail], error) {
	snaps, stats, hasMore, err := forumFeed.GetPage(ctx, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.ForumDetail]{Data: zipForumDetails(snaps, stats), HasMore: hasMore}, nil
}

func GetPersonalizedForumPage(ctx context.Context, page int, viewer models.Viewer) (*models.ListData[models.ForumDetail], error) {
	if viewer.IsAnonymous() {
		return GetForumPage(ctx, page, viewer)
	}
	general, err := mysql_repo.StatsRepository.RankedPageIds(ctx, mysql_repo.DBX(), mysql_repo.ForumTable, page, forumFeed.PageSize())
	if err != nil {
		return nil, err
	}
	var followed []int64
	if page == 1 {
		authorIds := mysql_repo.FollowRepository.FollowingIds(sqls.DB().WithContext(ctx), viewer.UserId)
		if len(authorIds) > 0 {
			followed, err = mysql_repo.StatsRepository.RankedIdsByAuthors(ctx, mysql_repo.DBX(), mysql_repo.ForumTable, authorIds, followedPrependLimit)
			if err != nil {
				zap.L().Warn("followed-author forum lookup failed", zap.Int64("userId", viewer.UserId), zap.Error(err))
				followed = nil
			}
		}
	}
	ids := mergeFollowedFirst(followed, general, forumFeed.PageSize())
	snaps, stats, err := forumFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	hasMore := len(general) == forumFeed.PageSize()
	return &models.ListData[models.ForumDetail]{Data: zipForumDetails(snaps, stats), HasMore: hasMore}, nil
}

func LikeForum(ctx context.Context, forumId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.ForumRepository.Get(db, forumId) == nil {
		return ERROR_FORUM_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, forumId, models.TargetForum)
}

func SaveForum(ctx context.Context, forumId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.ForumRepository.Get(db, forumId) == nil {
		return ERROR_FORUM_NOT_EXISTS
	}
	return toggleSave(db, viewer.UserId, forumId, models.TargetForum)
}

func EditForum(ctx context.Context, forumId int64, viewer models.Viewer, param *models.ParamEditContent) error {
	db := sqls.DB().WithContext(ctx)
	forum := mysql_repo.ForumRepository.Get(db, forumId)
	if forum == nil {
		return ERROR_FORUM_NOT_EXISTS
	}
	if forum.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_FORUM_EDIT
	}
	columns := map[string]interface{}{"update_time": time.Now()}
	if strs.IsNotBlank(param.Title) {
		columns["title"] = param.Title
	}
	if strs.IsNotBlank(param.Description) {
		columns["description"] = param.Description
	}
	if strs.IsNotBlank(param.Topic) {
		columns["topic"] = param.Topic
	}
	if err := mysql_repo.ForumRepository.Updates(db, forumId, columns); err != nil {
		zap.L().Error("edit forum failed", zap.Int64("forumId", forumId), zap.Error(err))
		return err
	}
	refreshForumSnapshot(ctx, forumId)
	return nil
}

// DeleteForum removes the forum with its comment tree, then scrubs the
// item entry plus every page and cursor under the forum's namespace and
// under each of its comments.
func DeleteForum(ctx context.Context, forumId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	forum := mysql_repo.ForumRepository.Get(db, forumId)
	if forum == nil {
		return ERROR_FORUM_NOT_EXISTS
	}
	if forum.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_FORUM_DELETE
	}
	comments := mysql_repo.ForumCommentRepository.Find(db, sqls.NewCnd().Cols("comment_id").Eq("forum_id", forumId))
	if err := mysql_repo.ForumRepository.DeleteForumInfo(db, forumId); err != nil {
		zap.L().Error("delete forum failed", zap.Int64("forumId", forumId), zap.Error(err))
		return err
	}
	if err := forumItems.Invalidate(ctx, forumId); err != nil {
		zap.L().Warn("forum cache invalidation failed", zap.Int64("forumId", forumId), zap.Error(err))
	}
	if err := forumComments.Scrub(ctx, forumId); err != nil {
		zap.L().Warn("forum comment page scrub failed", zap.Int64("forumId", forumId), zap.Error(err))
	}
	for _, c := range comments {
		if err := forumReplies.Scrub(ctx, c.CommentId); err != nil {
			zap.L().Warn("forum reply page scrub failed", zap.Int64("commentId", c.CommentId), zap.Error(err))
		}
	}
	return nil
}

func refreshForumSnapshot(ctx context.Context, forumId int64) {
	snaps, err := mysql_repo.ForumRepository.FindSnapshots(ctx, mysql_repo.DBX(), []int64{forumId})
	if err != nil || len(snaps) == 0 {
		zap.L().Warn("forum snapshot rebuild failed", zap.Int64("forumId", forumId), zap.Error(err))
		return
	}
	if err = forumItems.Refresh(ctx, forumId, snaps[0]); err != nil {
		zap.L().Warn("forum snapshot refresh failed", zap.Int64("forumId", forumId), zap.Error(err))
	}
}

func zipForumDetails(snaps []models.ForumSnapshot, stats map[int64]models.Stats) []models.ForumDetail {
	details := make([]models.ForumDetail, 0, len(snaps))
	for _, snap := range snaps {
		details = append(details, models.ForumDetail{ForumSnapshot: snap, Stats: stats[snap.ForumId]})
	}
	return details
}
