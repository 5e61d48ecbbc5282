package mysql_repo

import (
	"context"

	"studyhub/models"
	"studyhub/pkg/sqls"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

var FeedbackRepository = newFeedbackRepository()

func newFeedbackRepository() *feedbackRepository { return &feedbackRepository{} }

type feedbackRepository struct{}

func (r *feedbackRepository) Create(db *gorm.DB, t *models.Feedback) (err error) {
	err = db.Create(t).Error
	return
}

func (r *feedbackRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.Feedback) {
	cnd.Find(db, &list)
	return
}

var AiHistoryRepository = newAiHistoryRepository()

func newAiHistoryRepository() *aiHistoryRepository { return &aiHistoryRepository{} }

type aiHistoryRepository struct{}

func (r *aiHistoryRepository) Create(db *gorm.DB, t *models.AiHistory) (err error) {
	err = db.Create(t).Error
	return
}

func (r *aiHistoryRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.AiHistory) {
	cnd.Find(db, &list)
	return
}

var ExerciseRepository = newExerciseRepository()

func newExerciseRepository() *exerciseRepository { return &exerciseRepository{} }

type exerciseRepository struct{}

func (r *exerciseRepository) Create(db *gorm.DB, t *models.Exercise) (err error) {
	err = db.Create(t).Error
	return
}

func (r *exerciseRepository) Get(db *gorm.DB, id int64) *models.Exercise {
	ret := &models.Exercise{}
	if err := db.First(ret, "exercise_id = ?", id).Error; err != nil {
		return nil
	}
	return ret
}

func (r *exerciseRepository) Find(db *gorm.DB, cnd *sqls.Cnd) (list []models.Exercise) {
	cnd.Find(db, &list)
	return
}

// DistinctGrades backs the slow-changing grades aggregate.
func (r *exerciseRepository) DistinctGrades(ctx context.Context, dbx *sqlx.DB) ([]string, error) {
	var grades []string
	err := dbx.SelectContext(ctx, &grades,
		"SELECT DISTINCT grade FROM t_exercise ORDER BY grade ASC")
	return grades, err
}
