package logic

import (
	"context"

	"studyhub/models"
	"studyhub/pkg/strs"
)

// SearchIndex is the external index collaborator. It only hands back
// ranked ids; hydration goes through the same snapshot caches as the
// feeds so search costs no extra store reads for warm items.
type SearchIndex interface {
	Search(ctx context.Context, kind, query string, limit int) ([]int64, error)
}

func SearchBlogs(ctx context.Context, index SearchIndex, query string, viewer models.Viewer) (*models.ListData[models.BlogDetail], error) {
	if strs.IsBlank(query) {
		return nil, ERROR_MISSING_FIELDS
	}
	ids, err := index.Search(ctx, models.TargetBlog, query, blogFeed.PageSize())
	if err != nil {
		return nil, err
	}
	snaps, stats, err := blogFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.BlogDetail]{Data: zipBlogDetails(snaps, stats), HasMore: len(ids) == blogFeed.PageSize()}, nil
}

func SearchForums(ctx context.Context, index SearchIndex, query string, viewer models.Viewer) (*models.ListData[models.ForumDetail], error) {
	if strs.IsBlank(query) {
		return nil, ERROR_MISSING_FIELDS
	}
	ids, err := index.Search(ctx, models.TargetForum, query, forumFeed.PageSize())
	if err != nil {
		return nil, err
	}
	snaps, stats, err := forumFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.ForumDetail]{Data: zipForumDetails(snaps, stats), HasMore: len(ids) == forumFeed.PageSize()}, nil
}

func SearchVideos(ctx context.Context, index SearchIndex, query string, viewer models.Viewer) (*models.ListData[models.VideoDetail], error) {
	if strs.IsBlank(query) {
		return nil, ERROR_MISSING_FIELDS
	}
	ids, err := index.Search(ctx, models.TargetVideo, query, videoFeed.PageSize())
	if err != nil {
		return nil, err
	}
	snaps, stats, err := videoFeed.GetByIds(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	return &models.ListData[models.VideoDetail]{Data: zipVideoDetails(snaps, stats), HasMore: len(ids) == videoFeed.PageSize()}, nil
}
