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
	ERROR_VIDEO_NOT_EXISTS     = errors.New("Video not found")
	ERROR_ILLEGAL_VIDEO_DELETE = errors.New("can not delete other's video")
	ERROR_ILLEGAL_VIDEO_EDIT   = errors.New("can not edit other's video")
)

// CreateVideo requires at least one media ref: the playable URL comes
// from the upload collaborator, never from here.
func CreateVideo(ctx context.Context, param *models.ParamCreateVideo) (int64, error) {
	if strs.IsBlank(param.Title) || len(param.Media) == 0 {
		return 0, ERROR_MISSING_FIELDS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	video := &models.Video{
		VideoId:     snowflake.GenID(),
		AuthorId:    param.AuthorId,
		Title:       param.Title,
		Description: param.Description,
		Topic:       param.Topic,
		Duration:    param.Duration,
		CreateTime:  now,
		UpdateTime:  now,
	}
	db := sqls.DB().WithContext(ctx)
	if err = mysql_repo.VideoRepository.Create(db, video); err != nil {
		zap.L().Error("create video failed", zap.Error(err))
		return 0, err
	}
	refs, err := createMedia(db, video.VideoId, models.TargetVideo, param.Media)
	if err != nil {
		zap.L().Error("create video media failed", zap.Int64("videoId", video.VideoId), zap.Error(err))
		return 0, err
	}

	snap := models.VideoSnapshot{
		VideoId:     video.VideoId,
		AuthorId:    video.AuthorId,
		AuthorName:  author.Username,
		Title:       video.Title,
		Description: video.Description,
		Topic:       video.Topic,
		Duration:    video.Duration,
		Media:       refs,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = videoItems.Refresh(ctx, video.VideoId, snap); err != nil {
		zap.L().Warn("eager video snapshot write failed", zap.Int64("videoId", video.VideoId), zap.Error(err))
	}
	return video.VideoId, nil
}

func GetVideoById(ctx context.Context, videoId int64, viewer models.Viewer) (*models.VideoDetail, error) {
	snap, stats, err := videoItems.GetById(ctx, videoId, viewer)
	if err != nil {
		return nil, err
	}
	return &models.VideoDetail{VideoSnapshot: *snap, Stats: stats}, nil
}

func GetVideoPage(ctx context.Context, page int, viewer models.Viewer) (*models.ListData[models.VideoDetail], error) {
	snaps, stats, hasMore, err := videoFeed.GetPage(ctx, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.VideoDetail]{Data: zipVideoDetails(snaps, stats), HasMore: hasMore}, nil
}

func GetPersonalizedVideoPage(ctx context.Context, page int, viewer models.Viewer) (*models.ListData[models.VideoDetail], error) {
	if viewer.IsAnonymous() {
		return GetVideoPage(ctx, page, viewer)
	}
	general, err := mysql_repo.StatsRepository.RankedPageIds(ctx, mysql_repo.DBX(), mysql_repo.VideoTable, page, videoFeed.PageSize())
	if err != nil {
		return nil, err
	}
	var followed []int64
	if page == 1 {
		authorIds := mysql_repo.FollowRepository.FollowingIds(sqls.DB().WithContext(ctx), viewer.UserId)
		if len(authorIds) > 0 {
			followed, err = mysql_repo.StatsRepository.RankedIdsByAuthors(ctx, mysql_repo.DBX(), mysql_repo.VideoTable, authorIds, followedPrependLimit)
			if err != nil {
				zap.L().Warn("followed-author video lookup failed", zap.Int64("userId", viewer.UserId), zap.Error(err))
				followed = nil
			}
		}
	}
	ids := mergeFollowedFirst(followed, general, videoFeed.PageSize())
	snaps, stats, err := videoFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	hasMore := len(general) == videoFeed.PageSize()
	return &models.ListData[models.VideoDetail]{Data: zipVideoDetails(snaps, stats), HasMore: hasMore}, nil
}

func LikeVideo(ctx context.Context, videoId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.VideoRepository.Get(db, videoId) == nil {
		return ERROR_VIDEO_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, videoId, models.TargetVideo)
}

func SaveVideo(ctx context.Context, videoId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.VideoRepository.Get(db, videoId) == nil {
		return ERROR_VIDEO_NOT_EXISTS
	}
	return toggleSave(db, viewer.UserId, videoId, models.TargetVideo)
}

func EditVideo(ctx context.Context, videoId int64, viewer models.Viewer, param *models.ParamEditContent) error {
	db := sqls.DB().WithContext(ctx)
	video := mysql_repo.VideoRepository.Get(db, videoId)
	if video == nil {
		return ERROR_VIDEO_NOT_EXISTS
	}
	if video.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_VIDEO_EDIT
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
	if err := mysql_repo.VideoRepository.Updates(db, videoId, columns); err != nil {
		zap.L().Error("edit video failed", zap.Int64("videoId", videoId), zap.Error(err))
		return err
	}
	refreshVideoSnapshot(ctx, videoId)
	return nil
}

func DeleteVideo(ctx context.Context, videoId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	video := mysql_repo.VideoRepository.Get(db, videoId)
	if video == nil {
		return ERROR_VIDEO_NOT_EXISTS
	}
	if video.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_VIDEO_DELETE
	}
	comments := mysql_repo.VideoCommentRepository.Find(db, sqls.NewCnd().Cols("comment_id").Eq("video_id", videoId))
	if err := mysql_repo.VideoRepository.DeleteVideoInfo(db, videoId); err != nil {
		zap.L().Error("delete video failed", zap.Int64("videoId", videoId), zap.Error(err))
		return err
	}
	if err := videoItems.Invalidate(ctx, videoId); err != nil {
		zap.L().Warn("video cache invalidation failed", zap.Int64("videoId", videoId), zap.Error(err))
	}
	if err := videoComments.Scrub(ctx, videoId); err != nil {
		zap.L().Warn("video comment page scrub failed", zap.Int64("videoId", videoId), zap.Error(err))
	}
	for _, c := range comments {
		if err := videoReplies.Scrub(ctx, c.CommentId); err != nil {
			zap.L().Warn("video reply page scrub failed", zap.Int64("commentId", c.CommentId), zap.Error(err))
		}
	}
	return nil
}

func refreshVideoSnapshot(ctx context.Context, videoId int64) {
	snaps, err := mysql_repo.VideoRepository.FindSnapshots(ctx, mysql_repo.DBX(), []int64{videoId})
	if err != nil || len(snaps) == 0 {
		zap.L().Warn("video snapshot rebuild failed", zap.Int64("videoId", videoId), zap.Error(err))
		return
	}
	if err = videoItems.Refresh(ctx, videoId, snaps[0]); err != nil {
		zap.L().Warn("video snapshot refresh failed", zap.Int64("videoId", videoId), zap.Error(err))
	}
}

func zipVideoDetails(snaps []models.VideoSnapshot, stats map[int64]models.Stats) []models.VideoDetail {
	details := make([]models.VideoDetail, 0, len(snaps))
	for _, snap := range snaps {
		details = append(details, models.VideoDetail{VideoSnapshot: snap, Stats: stats[snap.VideoId]})
	}
	return details
}
