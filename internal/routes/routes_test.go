package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/praharilabs/prahari-backend/internal/config"
	"github.com/praharilabs/prahari-backend/internal/database"
	"github.com/praharilabs/prahari-backend/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testRoutes(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	// gorm.Open pings the connection once on its own.
	mock.ExpectPing()
	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	database.DB = db

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour}

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(nil),
		handlers.NewReportHandler(nil),
		handlers.NewUserHandler(nil),
		handlers.NewStatsHandler(nil),
		handlers.NewRewardHandler(nil),
		handlers.NewHealthHandler(),
	)
	return app, mock
}

// A liveness prober polls far faster than the API rate limit allows; the
// health endpoint must never be throttled.
func TestHealthEndpointIsNotRateLimited(t *testing.T) {
	app, mock := testRoutes(t)

	const probes = 120 // past the 100-req limiter window
	for i := 0; i < probes; i++ {
		mock.ExpectPing()
	}

	for i := 0; i < probes; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "probe %d", i)
		resp.Body.Close()
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAPIGroupIsRateLimited(t *testing.T) {
	app, _ := testRoutes(t)

	// An unrouted /api path still passes through the limiter; after the
	// window fills, requests come back 429 instead of 404.
	var last int
	for i := 0; i < 110; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/no-such-route", nil))
		require.NoError(t, err)
		last = resp.StatusCode
		resp.Body.Close()
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
