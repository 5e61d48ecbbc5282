package mysql_repo

import (
	"studyhub/logger"
	"studyhub/models"
	"studyhub/pkg/sqls"
	"studyhub/settings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

var dbx *sqlx.DB

func InitDB(cfg *settings.MysqlConfig) (err error) {
	gormConf := &gorm.Config{
		Logger: logger.NewGormZapLogger(zap.L()),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
			NoLowerCase:   false,
		},
	}
	if err = sqls.Open(cfg, gormConf, models.Models...); err != nil {
		zap.L().Error("InitDB error...", zap.Error(err))
		return err
	}
	// The raw batch queries (stats overlay, ranked pages, snapshot joins)
	// go through sqlx over the same pool.
	dbx = sqlx.NewDb(sqls.RawDB(), "mysql")
	return nil
}

func DBX() *sqlx.DB {
	return dbx
}

func Close() {
	sqls.Close()
}
