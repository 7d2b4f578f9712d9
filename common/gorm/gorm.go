package gorm

import (
	"log/slog"
	"os"
	"time"

	slogGorm "github.com/orandin/slog-gorm"
	"github.com/proofdeck/proofdeck-api/common"
	"github.com/proofdeck/proofdeck-api/type/shared/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

func InitGorm() {
	// Configure slog-gorm logger
	lg := slogGorm.New(
		slogGorm.WithHandler(slog.Default().Handler()),
		slogGorm.WithSlowThreshold(100*time.Millisecond),
	)

	// Config GORM Connector
	connector := postgres.New(
		postgres.Config{
			DSN:                  *common.Config.Postgres,
			PreferSimpleProtocol: true,
		},
	)

	// Open connection
	db, connectionErr := gorm.Open(connector, &gorm.Config{
		Logger: lg,
	})

	if connectionErr != nil {
		slog.Error("Failed to connect to database", "error", connectionErr)
		os.Exit(1)
	}

	// Route reads to a replica when one is configured
	if common.Config.PostgresReplica != nil && *common.Config.PostgresReplica != "" {
		resolverErr := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  *common.Config.PostgresReplica,
				PreferSimpleProtocol: true,
			})},
		}))
		if resolverErr != nil {
			slog.Error("Failed to register read replica", "error", resolverErr)
			os.Exit(1)
		}
		slog.Info("Read replica registered")
	}

	slog.Info("GORM Connected!")

	common.Gorm = db
}

// Migrate creates or updates the relational schema.
func Migrate() {
	if common.Gorm == nil {
		InitGorm()
	}

	migrateErr := common.Gorm.AutoMigrate(
		&model.User{},
		&model.Template{},
		&model.Group{},
		&model.Certificate{},
	)

	if migrateErr != nil {
		slog.Error("Failed to migrate schema", "error", migrateErr)
		os.Exit(1)
	}

	slog.Info("Schema migrated")
}
