package mysql_repo

import (
	"fmt"
	"strings"

	"studyhub/models"
	"studyhub/pkg/sqls"

	"gorm.io/gorm"
)

var FollowRepository = newFollowRepository()

func newFollowRepository() *followRepository { return &followRepository{} }

type followRepository struct{}

func (r *followRepository) Create(db *gorm.DB, t *models.Follow) (err error) {
	err = db.Create(t).Error
	return
}

func (r *followRepository) Creates(db *gorm.DB, ts []*models.Follow) error {
	return db.Create(&ts).Error
}

func (r *followRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.Follow) {
	cnd.Find(db, &list)
	return
}

func (r *followRepository) FindOne(db *gorm.DB, cnd *sqls.Cnd) *models.Follow {
	ret := &models.Follow{}
	if err := cnd.FindOne(db, ret); err != nil {
		return nil
	}
	return ret
}

func (r *followRepository) UpdateColumn(db *gorm.DB, id int64, name string, value interface{}) (err error) {
	err = db.Model(&models.Follow{}).Where("follow_id = ?", id).UpdateColumn(name, value).Error
	return
}

// FollowingIds returns whom the user currently follows; feeds the
// personalization slice.
func (r *followRepository) FollowingIds(db *gorm.DB, userId int64) (ids []int64) {
	db.Model(&models.Follow{}).
		Where("follower_id = ? AND val = 1", userId).
		Pluck("following_id", &ids)
	return
}

func (r *followRepository) CountFans(db *gorm.DB, userId int64) int64 {
	var count int64
	db.Model(&models.Follow{}).Where("following_id = ? AND val = 1", userId).Count(&count)
	return count
}

type followUpdate struct {
	FollowId int64
	Val      int8
}

// BatchApply upserts a batch of follow/unfollow operations in one
// transaction; existing rows are flipped with a single CASE WHEN update.
func (r *followRepository) BatchApply(db *gorm.DB, ops []models.FollowOperation, genId func() int64) error {
	if len(ops) == 0 {
		return nil
	}
	followerIds := make([]interface{}, len(ops))
	followingIds := make([]interface{}, len(ops))
	for i, op := range ops {
		followerIds[i] = op.UserId
		followingIds[i] = op.TargetUserId
	}

	existing := r.Find(db, sqls.NewCnd().In("follower_id", followerIds).In("following_id", followingIds))
	existingMap := make(map[string]*models.Follow, len(existing))
	for i := range existing {
		follow := &existing[i]
		existingMap[fmt.Sprintf("%d_%d", follow.FollowerId, follow.FollowingId)] = follow
	}

	var newFollows []*models.Follow
	var updates []followUpdate
	for _, op := range ops {
		key := fmt.Sprintf("%d_%d", op.UserId, op.TargetUserId)
		if old, ok := existingMap[key]; ok {
			updates = append(updates, followUpdate{FollowId: old.FollowId, Val: op.Action})
		} else if op.Action == 1 {
			newFollows = append(newFollows, &models.Follow{
				FollowId:    genId(),
				FollowerId:  op.UserId,
				FollowingId: op.TargetUserId,
				Val:         1,
			})
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if len(newFollows) > 0 {
			if err := tx.Create(&newFollows).Error; err != nil {
				return err
			}
		}
		if len(updates) > 0 {
			query := "UPDATE t_follow SET val = CASE follow_id "
			ids := make([]interface{}, len(updates))
			params := make([]interface{}, 0, len(updates)*3)
			for i, update := range updates {
				query += "WHEN ? THEN ? "
				ids[i] = update.FollowId
				params = append(params, update.FollowId, update.Val)
			}
			query += "END WHERE follow_id IN (?" + strings.Repeat(",?", len(ids)-1) + ")"
			params = append(params, ids...)
			if err := tx.Exec(query, params...).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
