package logic

import (
	"context"

	"studyhub/cache"
	"studyhub/dao/mysql_repo"
	"studyhub/dao/redis_repo"
	"studyhub/models"
	"studyhub/pkg/sqls"
)

// How many entries from followed authors get pulled to the front of a
// personalized feed page.
const followedPrependLimit = 5

var (
	store *redis_repo.Store

	blogItems  *cache.ItemEngine[models.BlogSnapshot]
	blogFeed   *cache.FeedEngine[models.BlogSnapshot]
	forumItems *cache.ItemEngine[models.ForumSnapshot]
	forumFeed  *cache.FeedEngine[models.ForumSnapshot]
	videoItems *cache.ItemEngine[models.VideoSnapshot]
	videoFeed  *cache.FeedEngine[models.VideoSnapshot]

	forumComments *cache.ListEngine[models.CommentSnapshot]
	forumReplies  *cache.ListEngine[models.CommentSnapshot]
	videoComments *cache.ListEngine[models.CommentSnapshot]
	videoReplies  *cache.ListEngine[models.CommentSnapshot]
)

// Init builds the cache engines. Call it after settings, mysql and redis
// are up so the TTL and page size knobs come from live config.
func Init() {
	store = redis_repo.DefaultStore()
	itemTTL := redis_repo.ItemTTL()
	pageTTL := redis_repo.PageTTL()
	pageSize := redis_repo.PageSize()

	blogItems = cache.NewItemEngine[models.BlogSnapshot](
		store, models.TargetBlog, itemTTL, ERROR_BLOG_NOT_EXISTS,
		func(ctx context.Context, id int64) (*models.BlogSnapshot, error) {
			snaps, err := mysql_repo.BlogRepository.FindSnapshots(ctx, mysql_repo.DBX(), []int64{id})
			if err != nil || len(snaps) == 0 {
				return nil, err
			}
			return &snaps[0], nil
		},
		func(ctx context.Context, id int64) error {
			return mysql_repo.BlogRepository.IncreaseViewNum(sqls.DB().WithContext(ctx), id)
		},
		oneStats(mysql_repo.BlogTable),
	)
	blogFeed = cache.NewFeedEngine[models.BlogSnapshot](
		store, models.TargetBlog, itemTTL, pageSize,
		func(s models.BlogSnapshot) int64 { return s.BlogId },
		rankedPage(mysql_repo.BlogTable),
		func(ctx context.Context, ids []int64) ([]models.BlogSnapshot, error) {
			return mysql_repo.BlogRepository.FindSnapshots(ctx, mysql_repo.DBX(), ids)
		},
		manyStats(mysql_repo.BlogTable),
	)

	forumItems = cache.NewItemEngine[models.ForumSnapshot](
		store, models.TargetForum, itemTTL, ERROR_FORUM_NOT_EXISTS,
		func(ctx context.Context, id int64) (*models.ForumSnapshot, error) {
			snaps, err := mysql_repo.ForumRepository.FindSnapshots(ctx, mysql_repo.DBX(), []int64{id})
			if err != nil || len(snaps) == 0 {
				return nil, err
			}
			return &snaps[0], nil
		},
		func(ctx context.Context, id int64) error {
			return mysql_repo.ForumRepository.IncreaseViewNum(sqls.DB().WithContext(ctx), id)
		},
		oneStats(mysql_repo.ForumTable),
	)
	forumFeed = cache.NewFeedEngine[models.ForumSnapshot](
		store, models.TargetForum, itemTTL, pageSize,
		func(s models.ForumSnapshot) int64 { return s.ForumId },
		rankedPage(mysql_repo.ForumTable),
		func(ctx context.Context, ids []int64) ([]models.ForumSnapshot, error) {
			return mysql_repo.ForumRepository.FindSnapshots(ctx, mysql_repo.DBX(), ids)
		},
		manyStats(mysql_repo.ForumTable),
	)

	videoItems = cache.NewItemEngine[models.VideoSnapshot](
		store, models.TargetVideo, itemTTL, ERROR_VIDEO_NOT_EXISTS,
		func(ctx context.Context, id int64) (*models.VideoSnapshot, error) {
			snaps, err := mysql_repo.VideoRepository.FindSnapshots(ctx, mysql_repo.DBX(), []int64{id})
			if err != nil || len(snaps) == 0 {
				return nil, err
			}
			return &snaps[0], nil
		},
		func(ctx context.Context, id int64) error {
			return mysql_repo.VideoRepository.IncreaseViewNum(sqls.DB().WithContext(ctx), id)
		},
		oneStats(mysql_repo.VideoTable),
	)
	videoFeed = cache.NewFeedEngine[models.VideoSnapshot](
		store, models.TargetVideo, itemTTL, pageSize,
		func(s models.VideoSnapshot) int64 { return s.VideoId },
		rankedPage(mysql_repo.VideoTable),
		func(ctx context.Context, ids []int64) ([]models.VideoSnapshot, error) {
			return mysql_repo.VideoRepository.FindSnapshots(ctx, mysql_repo.DBX(), ids)
		},
		manyStats(mysql_repo.VideoTable),
	)

	commentId := func(s models.CommentSnapshot) int64 { return s.CommentId }
	forumComments = cache.NewListEngine[models.CommentSnapshot](
		store, models.TargetForumComment, pageTTL, pageSize, commentId,
		func(ctx context.Context, parentId int64, page, size int) ([]models.CommentSnapshot, error) {
			return mysql_repo.ForumCommentRepository.LoadPage(ctx, mysql_repo.DBX(), parentId, page, size)
		},
		manyStats(mysql_repo.ForumCommentTable),
	)
	forumReplies = cache.NewListEngine[models.CommentSnapshot](
		store, models.TargetForumReply, pageTTL, pageSize, commentId,
		func(ctx context.Context, parentId int64, page, size int) ([]models.CommentSnapshot, error) {
			return mysql_repo.ForumReplyRepository.LoadPage(ctx, mysql_repo.DBX(), parentId, page, size)
		},
		manyStats(mysql_repo.ForumReplyTable),
	)
	videoComments = cache.NewListEngine[models.CommentSnapshot](
		store, models.TargetVideoComment, pageTTL, pageSize, commentId,
		func(ctx context.Context, parentId int64, page, size int) ([]models.CommentSnapshot, error) {
			return mysql_repo.VideoCommentRepository.LoadPage(ctx, mysql_repo.DBX(), parentId, page, size)
		},
		manyStats(mysql_repo.VideoCommentTable),
	)
	videoReplies = cache.NewListEngine[models.CommentSnapshot](
		store, models.TargetVideoReply, pageTTL, pageSize, commentId,
		func(ctx context.Context, parentId int64, page, size int) ([]models.CommentSnapshot, error) {
			return mysql_repo.VideoReplyRepository.LoadPage(ctx, mysql_repo.DBX(), parentId, page, size)
		},
		manyStats(mysql_repo.VideoReplyTable),
	)
}

func manyStats(ct mysql_repo.ContentTable) func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error) {
	return func(ctx context.Context, ids []int64, viewer models.Viewer) (map[int64]models.Stats, error) {
		return mysql_repo.StatsRepository.BatchStats(ctx, mysql_repo.DBX(), ct, ids, viewer)
	}
}

func oneStats(ct mysql_repo.ContentTable) func(ctx context.Context, id int64, viewer models.Viewer) (models.Stats, error) {
	return func(ctx context.Context, id int64, viewer models.Viewer) (models.Stats, error) {
		stats, err := mysql_repo.StatsRepository.BatchStats(ctx, mysql_repo.DBX(), ct, []int64{id}, viewer)
		if err != nil {
			return models.Stats{}, err
		}
		return stats[id], nil
	}
}

func rankedPage(ct mysql_repo.ContentTable) func(ctx context.Context, page, size int) ([]int64, error) {
	return func(ctx context.Context, page, size int) ([]int64, error) {
		return mysql_repo.StatsRepository.RankedPageIds(ctx, mysql_repo.DBX(), ct, page, size)
	}
}
