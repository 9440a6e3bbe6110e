package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	helper "eventorganizer_backend/internals/helpers"
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

func profileColumns() []string {
	return []string{
		"profile_id", "profile_user_id", "profile_role",
		"profile_created_at", "profile_updated_at",
	}
}

func TestGetRoleDefaultsWhenProfileMissing(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "user_profiles"`).
		WillReturnRows(sqlmock.NewRows(profileColumns()))

	role, err := GetRole(db, uuid.New())
	if err != nil {
		t.Fatalf("GetRole() error = %v", err)
	}
	if role != "user" {
		t.Errorf("role = %s, want user", role)
	}
}

func TestGetRoleReturnsStoredRole(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "user_profiles"`).
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow(uuid.New(), userID, "moderator", now, now))

	role, err := GetRole(db, userID)
	if err != nil {
		t.Fatalf("GetRole() error = %v", err)
	}
	if role != "moderator" {
		t.Errorf("role = %s, want moderator", role)
	}
}

func TestGetRoleDegradesUnknownRole(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "user_profiles"`).
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow(uuid.New(), uuid.New(), "superuser", now, now))

	role, err := GetRole(db, uuid.New())
	if err != nil {
		t.Fatalf("GetRole() error = %v", err)
	}
	if role != "user" {
		t.Errorf("role = %s, want user (unknown role degrades)", role)
	}
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := SetRole(db, uuid.New(), "owner")
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("SetRole() error = %v, want validation error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestSetRoleUnknownUser(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := SetRole(db, uuid.New(), "moderator")
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "NOT_FOUND" {
		t.Fatalf("SetRole() error = %v, want not found", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSetRoleUpdatesExistingProfile(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT \* FROM "user_profiles"`).
		WillReturnRows(sqlmock.NewRows(profileColumns()).
			AddRow(uuid.New(), userID, "user", now, now))
	mock.ExpectExec(`UPDATE "user_profiles" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	profile, err := SetRole(db, userID, "admin")
	if err != nil {
		t.Fatalf("SetRole() error = %v", err)
	}
	if profile.ProfileRole != "admin" {
		t.Errorf("role = %s, want admin", profile.ProfileRole)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
