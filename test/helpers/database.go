package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/proofdeck/proofdeck-api/type/shared/model"
)

// PostgresContainer holds the test database container
type PostgresContainer struct {
	Container testcontainers.Container
	DB        *gorm.DB
	ConnStr   string
}

// SetupTestDatabase creates a PostgreSQL container and returns a GORM DB connection
func SetupTestDatabase(t *testing.T) *PostgresContainer {
	ctx := context.Background()

	postgresContainer, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgrescontainer.WithDatabase("test_proofdeck"),
		postgrescontainer.WithUsername("test"),
		postgrescontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent mode for tests
	})
	require.NoError(t, err, "Failed to connect to test database")

	err = db.AutoMigrate(
		&model.User{},
		&model.Template{},
		&model.Group{},
		&model.Certificate{},
	)
	require.NoError(t, err, "Failed to run migrations")

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	return &PostgresContainer{
		Container: postgresContainer,
		DB:        db,
		ConnStr:   connStr,
	}
}

// SeedIssuer inserts an issuer account with the given quota.
func SeedIssuer(t *testing.T, db *gorm.DB, id string, quota int) *model.User {
	user := &model.User{
		ID:        id,
		Name:      "Test Issuer",
		Email:     id + "@example.com",
		CertQuota: quota,
	}
	require.NoError(t, db.Create(user).Error, "Failed to seed issuer")
	return user
}

// SeedTemplate inserts a fixed-style template owned by the issuer.
func SeedTemplate(t *testing.T, db *gorm.DB, id, userId, style string) *model.Template {
	template := &model.Template{
		ID:          id,
		UserID:      &userId,
		Title:       "Test Template",
		LayoutStyle: style,
	}
	require.NoError(t, db.Create(template).Error, "Failed to seed template")
	return template
}
