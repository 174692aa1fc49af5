package db

import (
	"testing"

	"github.com/meinhoongagan/portfolio-api/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBUser: "app", DBPassword: "secret", DBName: "portfolio"}
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=portfolio sslmode=disable TimeZone=UTC", postgresDSN(cfg))

	cfg.DBURL = "postgres://u:p@h/d"
	assert.Equal(t, "postgres://u:p@h/d", postgresDSN(cfg))
}

func TestMySQLDSN(t *testing.T) {
	cfg := &config.Config{DBHost: "db", DBPort: "3307", DBUser: "app", DBPassword: "secret", DBName: "portfolio"}
	assert.Equal(t, "app:secret@tcp(db:3307)/portfolio?charset=utf8mb4&parseTime=True&loc=UTC", mysqlDSN(cfg))
}

func TestDialectorFor(t *testing.T) {
	for _, driver := range []string{"postgres", "mysql", "sqlite", ""} {
		d, err := dialectorFor(&config.Config{DBDriver: driver})
		require.NoError(t, err, driver)
		assert.NotNil(t, d)
	}

	_, err := dialectorFor(&config.Config{DBDriver: "oracle"})
	assert.EqualError(t, err, `unsupported DB_DRIVER "oracle"`)
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	database, err := Open(&config.Config{DBDriver: "sqlite", DBURL: "file::memory:?_foreign_keys=on"})
	require.NoError(t, err)
	defer Close(database)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(database))
	for _, table := range []string{"users", "otp", "blogs", "comments", "contacts", "projects", "services", "service_details", "testimonials"} {
		assert.True(t, database.Migrator().HasTable(table), table)
	}
}

func TestCloseNil(t *testing.T) {
	assert.NotPanics(t, func() { Close(nil) })
}
