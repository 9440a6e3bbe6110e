package controller

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open() error = %v", err)
	}
	return db, mock
}

func TestGetPublicEventsFiltersOnVisibility(t *testing.T) {
	db, mock := newMockDB(t)
	ctrl := NewEventController(db)

	app := fiber.New()
	app.Get("/public-events", ctrl.GetPublicEvents)

	now := time.Now()
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	// both queries must carry the visibility filter
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE event_is_public = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE event_is_public = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{
			"event_id", "event_title", "event_description", "event_start_time",
			"event_end_time", "event_author_id", "event_location_id",
			"event_category_id", "event_is_public", "event_created_at", "event_updated_at",
		}).AddRow(
			uuid.New(), "Open Air Concert", "", start, start.Add(3*time.Hour),
			nil, nil, nil, true, now, now,
		))

	req := httptest.NewRequest(fiber.MethodGet, "/public-events", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !strings.Contains(string(body), `"Open Air Concert"`) {
		t.Errorf("body missing public event: %s", body)
	}
	if !strings.Contains(string(body), `"success":true`) {
		t.Errorf("body missing success envelope: %s", body)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
