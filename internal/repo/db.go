// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file contains database bootstrapping helpers for
// Postgres and schema migrations.
package repo

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/secondchance/connect-backend/internal/domain"
)

// OpenPostgres opens a Postgres connection pool from a DSN and installs the
// OTel tracing plugin. TranslateError maps recognized constraint violations
// to the gorm sentinels (ErrDuplicatedKey, ErrForeignKeyViolated) on every
// driver; unrecognized errors keep their driver shape (*pgconn.PgError with
// SQLSTATE codes) and the error translator maps those directly.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Spans only; metrics are covered by the HTTP middleware.
	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Pool
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for every domain model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Profile{},
		&domain.Job{},
		&domain.Application{},
		&domain.Message{},
		&domain.SupportService{},
	)
}
