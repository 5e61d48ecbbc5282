package mysql_repo

import (
	"studyhub/models"
	"studyhub/pkg/sqls"

	"gorm.io/gorm"
)

var UserRepository = newUserRepository()

func newUserRepository() *userRepository { return &userRepository{} }

type userRepository struct{}

func (r *userRepository) Create(db *gorm.DB, t *models.User) (err error) {
	err = db.Create(t).Error
	return
}

func (r *userRepository) Get(db *gorm.DB, id int64) *models.User {
	ret := &models.User{}
	if err := db.First(ret, "user_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *userRepository) Take(db *gorm.DB, where ...interface{}) *models.User {
	ret := &models.User{}
	if err := db.Take(ret, where...).Error; err != nil {
		return nil
	}
	return ret
}

func (r *userRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.User) {
	cnd.Find(db, &list)
	return
}

func (r *userRepository) UpdateColumn(db *gorm.DB, id int64, name string, value interface{}) (err error) {
	err = db.Model(&models.User{}).Where("user_id = ?", id).UpdateColumn(name, value).Error
	return
}
