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
	ERROR_BLOG_NOT_EXISTS     = errors.New("Blog not found")
	ERROR_ILLEGAL_BLOG_DELETE = errors.New("can not delete other's blog")
	ERROR_ILLEGAL_BLOG_EDIT   = errors.New("can not edit other's blog")
)

func CreateBlog(ctx context.Context, param *models.ParamCreateBlog) (int64, error) {
	if strs.AnyBlank(param.Title, param.Description) {
		return 0, ERROR_MISSING_FIELDS
	}
	author, err := authorOf(param.AuthorId)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	blog := &models.Blog{
		BlogId:      snowflake.GenID(),
		AuthorId:    param.AuthorId,
		Title:       param.Title,
		Description: param.Description,
		Topic:       param.Topic,
		CreateTime:  now,
		UpdateTime:  now,
	}
	db := sqls.DB().WithContext(ctx)
	if err = mysql_repo.BlogRepository.Create(db, blog); err != nil {
		zap.L().Error("create blog failed", zap.Error(err))
		return 0, err
	}
	refs, err := createMedia(db, blog.BlogId, models.TargetBlog, param.Media)
	if err != nil {
		zap.L().Error("create blog media failed", zap.Int64("blogId", blog.BlogId), zap.Error(err))
		return 0, err
	}

	// Eager snapshot so the first readers hit the cache.
	snap := models.BlogSnapshot{
		BlogId:      blog.BlogId,
		AuthorId:    blog.AuthorId,
		AuthorName:  author.Username,
		Title:       blog.Title,
		Description: blog.Description,
		Topic:       blog.Topic,
		Media:       refs,
		CreateTime:  now,
		UpdateTime:  now,
	}
	if err = blogItems.Refresh(ctx, blog.BlogId, snap); err != nil {
		zap.L().Warn("eager blog snapshot write failed", zap.Int64("blogId", blog.BlogId), zap.Error(err))
	}
	return blog.BlogId, nil
}

func GetBlogById(ctx context.Context, blogId int64, viewer models.Viewer) (*models.BlogDetail, error) {
	snap, stats, err := blogItems.GetById(ctx, blogId, viewer)
	if err != nil {
		return nil, err
	}
	return &models.BlogDetail{BlogSnapshot: *snap, Stats: stats}, nil
}

func GetBlogPage(ctx context.Context, page int, viewer models.Viewer) (*models.ListData[models.BlogDetail], error) {
	snaps, stats, hasMore, err := blogFeed.GetPage(ctx, page, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.BlogDetail]{Data: zipBlogDetails(snaps, stats), HasMore: hasMore}, nil
}

// GetPersonalizedBlogPage pulls a handful of recent entries from followed
// authors to the front of the ranked page, falling back to the plain page
// for anonymous viewers.
func GetPersonalizedBlogPage(ctx context.Context, page int, viewer models.Viewer) (*models.ListData[models.BlogDetail], error) {
	if viewer.IsAnonymous() {
		return GetBlogPage(ctx, page, viewer)
	}
	general, err := mysql_repo.StatsRepository.RankedPageIds(ctx, mysql_repo.DBX(), mysql_repo.BlogTable, page, blogFeed.PageSize())
	if err != nil {
		return nil, err
	}
	var followed []int64
	if page == 1 {
		authorIds := mysql_repo.FollowRepository.FollowingIds(sqls.DB().WithContext(ctx), viewer.UserId)
		if len(authorIds) > 0 {
			followed, err = mysql_repo.StatsRepository.RankedIdsByAuthors(ctx, mysql_repo.DBX(), mysql_repo.BlogTable, authorIds, followedPrependLimit)
			if err != nil {
				zap.L().Warn("followed-author blog lookup failed", zap.Int64("userId", viewer.UserId), zap.Error(err))
				followed = nil
			}
		}
	}
	ids := mergeFollowedFirst(followed, general, blogFeed.PageSize())
	snaps, stats, err := blogFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	hasMore := len(general) == blogFeed.PageSize()
	return &models.ListData[models.BlogDetail]{Data: zipBlogDetails(snaps, stats), HasMore: hasMore}, nil
}

func GetUserBlogPage(ctx context.Context, authorId int64, page int, viewer models.Viewer) (*models.ListData[models.BlogDetail], error) {
	size := blogFeed.PageSize()
	blogs := mysql_repo.BlogRepository.Find(sqls.DB().WithContext(ctx), sqls.NewCnd().
		Eq("author_id", authorId).Desc("update_time").Desc("id").Page(page, size))
	ids := make([]int64, 0, len(blogs))
	for _, b := range blogs {
		ids = append(ids, b.BlogId)
	}
	snaps, stats, err := blogFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.BlogDetail]{Data: zipBlogDetails(snaps, stats), HasMore: len(ids) == size}, nil
}

// LikeBlog toggles the viewer's like. Store-only: the next read merges
// the new count over the unchanged snapshot.
func LikeBlog(ctx context.Context, blogId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.BlogRepository.Get(db, blogId) == nil {
		return ERROR_BLOG_NOT_EXISTS
	}
	return toggleLike(db, viewer.UserId, blogId, models.TargetBlog)
}

func SaveBlog(ctx context.Context, blogId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	if mysql_repo.BlogRepository.Get(db, blogId) == nil {
		return ERROR_BLOG_NOT_EXISTS
	}
	return toggleSave(db, viewer.UserId, blogId, models.TargetBlog)
}

func EditBlog(ctx context.Context, blogId int64, viewer models.Viewer, param *models.ParamEditContent) error {
	db := sqls.DB().WithContext(ctx)
	blog := mysql_repo.BlogRepository.Get(db, blogId)
	if blog == nil {
		return ERROR_BLOG_NOT_EXISTS
	}
	if blog.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_BLOG_EDIT
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
	if err := mysql_repo.BlogRepository.Updates(db, blogId, columns); err != nil {
		zap.L().Error("edit blog failed", zap.Int64("blogId", blogId), zap.Error(err))
		return err
	}
	refreshBlogSnapshot(ctx, blogId)
	return nil
}

func DeleteBlog(ctx context.Context, blogId int64, viewer models.Viewer) error {
	db := sqls.DB().WithContext(ctx)
	blog := mysql_repo.BlogRepository.Get(db, blogId)
	if blog == nil {
		return ERROR_BLOG_NOT_EXISTS
	}
	if blog.AuthorId != viewer.UserId {
		return ERROR_ILLEGAL_BLOG_DELETE
	}
	if err := mysql_repo.BlogRepository.DeleteBlogInfo(db, blogId); err != nil {
		zap.L().Error("delete blog failed", zap.Int64("blogId", blogId), zap.Error(err))
		return err
	}
	// Stale-on-failure here is bounded by the item TTL.
	if err := blogItems.Invalidate(ctx, blogId); err != nil {
		zap.L().Warn("blog cache invalidation failed", zap.Int64("blogId", blogId), zap.Error(err))
	}
	return nil
}

// refreshBlogSnapshot rebuilds the cached snapshot from the store after a
// write. Failures degrade to the stale entry aging out.
func refreshBlogSnapshot(ctx context.Context, blogId int64) {
	snaps, err := mysql_repo.BlogRepository.FindSnapshots(ctx, mysql_repo.DBX(), []int64{blogId})
	if err != nil || len(snaps) == 0 {
		zap.L().Warn("blog snapshot rebuild failed", zap.Int64("blogId", blogId), zap.Error(err))
		return
	}
	if err = blogItems.Refresh(ctx, blogId, snaps[0]); err != nil {
		zap.L().Warn("blog snapshot refresh failed", zap.Int64("blogId", blogId), zap.Error(err))
	}
}

func zipBlogDetails(snaps []models.BlogSnapshot, stats map[int64]models.Stats) []models.BlogDetail {
	details := make([]models.BlogDetail, 0, len(snaps))
	for _, snap := range snaps {
		details = append(details, models.BlogDetail{BlogSnapshot: snap, Stats: stats[snap.BlogId]})
	}
	return details
}
