package mysql_repo

import (
	"studyhub/models"
	"studyhub/pkg/sqls"

	"gorm.io/gorm"
)

var LikeRepository = newLikeRepository()

func newLikeRepository() *likeRepository { return &likeRepository{} }

type likeRepository struct{}

func (r *likeRepository) Create(db *gorm.DB, t *models.Like) (err error) {
	err = db.Create(t).Error
	return
}

func (r *likeRepository) FindOne(db *gorm.DB, cnd *sqls.Cnd) *models.Like {
	ret := &models.Like{}
	if err := cnd.FindOne(db, ret); err != nil {
		return nil
	}
	return ret
}

func (r *likeRepository) Delete(db *gorm.DB, likeId int64) {
	db.Delete(&models.Like{}, "like_id = ?", likeId)
}

func (r *likeRepository) CountByTarget(db *gorm.DB, targetId int64, targetType string) int64 {
	var count int64
	db.Model(&models.Like{}).
		Where("target_id = ? AND target_type = ?", targetId, targetType).Count(&count)
	return count
}

var CollectRepository = newCollectRepository()

func newCollectRepository() *collectRepository { return &collectRepository{} }

type collectRepository struct{}

func (r *collectRepository) Create(db *gorm.DB, t *models.Collect) (err error) {
	err = db.Create(t).Error
	return
}

func (r *collectRepository) FindOne(db *gorm.DB, cnd *sqls.Cnd) *models.Collect {
	ret := &models.Collect{}
	if err := cnd.FindOne(db, ret); err != nil {
		return nil
	}
	return ret
}

func (r *collectRepository) Delete(db *gorm.DB, collectId int64) {
	db.Delete(&models.Collect{}, "collect_id = ?", collectId)
}
