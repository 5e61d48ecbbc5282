package logic

import (
	"errors"

	"studyhub/cache"
	"studyhub/dao/mysql_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"

	"gorm.io/gorm"
)

var (
	ERROR_MISSING_FIELDS  = errors.New("Missing required fields")
	ERROR_USER_NOT_EXISTS = errors.New("User not found")
)

// toggleLike flips the viewer's like row for one content item: absent
// creates it, present removes it. The cached snapshot is untouched since
// like counts are dynamic fields.
func toggleLike(db *gorm.DB, userId, targetId int64, targetType string) error {
	existing := mysql_repo.LikeRepository.FindOne(db, sqls.NewCnd().
		Eq("user_id", userId).Eq("target_id", targetId).Eq("target_type", targetType))
	if existing == nil {
		return mysql_repo.LikeRepository.Create(db, &models.Like{
			LikeId:     snowflake.GenID(),
			UserId:     userId,
			TargetId:   targetId,
			TargetType: targetType,
		})
	}
	mysql_repo.LikeRepository.Delete(db, existing.LikeId)
	return nil
}

func toggleSave(db *gorm.DB, userId, targetId int64, targetType string) error {
	existing := mysql_repo.CollectRepository.FindOne(db, sqls.NewCnd().
		Eq("user_id", userId).Eq("target_id", targetId).Eq("target_type", targetType))
	if existing == nil {
		return mysql_repo.CollectRepository.Create(db, &models.Collect{
			CollectId:  snowflake.GenID(),
			UserId:     userId,
			TargetId:   targetId,
			TargetType: targetType,
		})
	}
	mysql_repo.CollectRepository.Delete(db, existing.CollectId)
	return nil
}

// createMedia persists the upload collaborator's handles for one item and
// returns the refs for the eager snapshot.
func createMedia(db *gorm.DB, targetId int64, targetType string, params []models.ParamMedia) ([]models.MediaRef, error) {
	if len(params) == 0 {
		return nil, nil
	}
	rows := make([]*models.Media, 0, len(params))
	refs := make([]models.MediaRef, 0, len(params))
	for _, p := range params {
		rows = append(rows, &models.Media{
			MediaId:      snowflake.GenID(),
			TargetId:     targetId,
			TargetType:   targetType,
			Url:          p.Url,
			DeleteHandle: p.DeleteHandle,
			MimeType:     p.MimeType,
		})
		refs = append(refs, models.MediaRef{Url: p.Url, DeleteHandle: p.DeleteHandle, MimeType: p.MimeType})
	}
	if err := mysql_repo.MediaRepository.Creates(db, rows); err != nil {
		return nil, err
	}
	return refs, nil
}

func authorOf(userId int64) (*models.User, error) {
	user := cache.UserCache.Get(userId)
	if user == nil {
		return nil, ERROR_USER_NOT_EXISTS
	}
	return user, nil
}

// mergeFollowedFirst prepends the followed-author ids to the general page
// ids, deduplicated, capped at the page size.
func mergeFollowedFirst(followed, general []int64, pageSize int) []int64 {
	merged := make([]int64, 0, pageSize)
	seen := make(map[int64]struct{}, pageSize)
	for _, id := range followed {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
		if len(merged) >= pageSize {
			return merged
		}
	}
	for _, id := range general {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		merged = append(merged, id)
		if len(merged) >= pageSize {
			break
		}
	}
	return merged
}
