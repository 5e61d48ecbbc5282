package logic

import (
	"context"
	"errors"
	"time"

	"studyhub/dao/mysql_repo"
	"studyhub/dao/redis_repo"
	"studyhub/models"
	"studyhub/pkg/snowflake"
	"studyhub/pkg/sqls"
	"studyhub/pkg/strs"

	"go.uber.org/zap"
)

var ERROR_EXERCISE_NOT_EXISTS = errors.New("Exercise not found")

func CreateExercise(ctx context.Context, authorId int64, title, topic, grade string) (int64, error) {
	if strs.AnyBlank(title, grade) {
		return 0, ERROR_MISSING_FIELDS
	}
	if _, err := authorOf(authorId); err != nil {
		return 0, err
	}
	now := time.Now()
	exercise := &models.Exercise{
		ExerciseId: snowflake.GenID(),
		AuthorId:   authorId,
		Title:      title,
		Topic:      topic,
		Grade:      grade,
		CreateTime: now,
		UpdateTime: now,
	}
	if err := mysql_repo.ExerciseRepository.Create(sqls.DB().WithContext(ctx), exercise); err != nil {
		zap.L().Error("create exercise failed", zap.Error(err))
		return 0, err
	}
	// New grades show up when the aggregate ages out.
	return exercise.ExerciseId, nil
}

func GetExerciseById(ctx context.Context, exerciseId int64) (*models.Exercise, error) {
	exercise := mysql_repo.ExerciseRepository.Get(sqls.DB().WithContext(ctx), exerciseId)
	if exercise == nil {
		return nil, ERROR_EXERCISE_NOT_EXISTS
	}
	return exercise, nil
}

func GetExercisePage(ctx context.Context, grade string, page, size int) []models.Exercise {
	cnd := sqls.NewCnd().Desc("update_time").Desc("id").Page(page, size)
	if strs.IsNotBlank(grade) {
		cnd.Eq("grade", grade)
	}
	return mysql_repo.ExerciseRepository.Find(sqls.DB().WithContext(ctx), cnd)
}

// AllGrades is the slowest-moving aggregate in the system, cached for a
// day under a single fixed key.
func AllGrades(ctx context.Context) ([]string, error) {
	var grades []string
	hit, err := store.GetJSON(ctx, redis_repo.KeyGrades, &grades)
	if err != nil {
		zap.L().Warn("grade aggregate cache read failed, falling back to store", zap.Error(err))
	} else if hit {
		return grades, nil
	}

	grades, err = mysql_repo.ExerciseRepository.DistinctGrades(ctx, mysql_repo.DBX())
	if err != nil {
		return nil, err
	}
	if err = store.SetJSON(ctx, redis_repo.KeyGrades, grades, redis_repo.AggregateTTL()); err != nil {
		zap.L().Warn("grade aggregate cache write failed", zap.Error(err))
	}
	return grades, nil
}
