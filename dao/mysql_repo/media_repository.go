package mysql_repo

import (
	"studyhub/models"
	"studyhub/pkg/sqls"

	"gorm.io/gorm"
)

var MediaRepository = newMediaRepository()

type mediaRepository struct{}

func newMediaRepository() *mediaRepository { return &mediaRepository{} }

func (r *mediaRepository) Create(db *gorm.DB, t *models.Media) (err error) {
	err = db.Create(t).Error
	return
}

func (r *mediaRepository) Creates(db *gorm.DB, ts []*models.Media) error {
	if len(ts) == 0 {
		return nil
	}
	return db.Create(&ts).Error
}

func (r *mediaRepository) FindByTarget(db *gorm.DB, targetId int64, targetType string) (list []models.Media) {
	sqls.NewCnd().Eq("target_id", targetId).Eq("target_type", targetType).Asc("id").Find(db, &list)
	return
}
