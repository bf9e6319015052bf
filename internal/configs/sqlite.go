package config

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	repository "task-market.com/task-market/internal/repositories"
)

func NewDatabaseClient(dsn string, log logrus.FieldLogger) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.WithError(err).Fatal("db open failed")
	}

	// SQLite allows one writer; a single connection keeps writers queued in
	// Go instead of failing with SQLITE_BUSY.
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("db handle unavailable")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := repository.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	return db
}
