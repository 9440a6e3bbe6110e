package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventorganizer_backend/internals/features/events/category/dto"
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

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db, mock := newMockDB(t)

	// slug check first, then the case-insensitive name check
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE lower\(category_slug\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE LOWER\(category_name\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "categories"`).
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(uuid.New()))

	category, err := CreateCategory(db, dto.CreateCategoryRequest{Name: "  Tech Talks  "})
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if category.CategoryName != "Tech Talks" {
		t.Errorf("name = %q, want trimmed", category.CategoryName)
	}
	if category.CategorySlug != "tech-talks" {
		t.Errorf("slug = %q, want tech-talks", category.CategorySlug)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCreateCategoryConflictOnTakenSlug(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE lower\(category_slug\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := CreateCategory(db, dto.CreateCategoryRequest{Name: "Tech Talks"})
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "CONFLICT" {
		t.Fatalf("CreateCategory() error = %v, want conflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCreateCategoryConflictOnTakenName(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE lower\(category_slug\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "categories" WHERE LOWER\(category_name\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := CreateCategory(db, dto.CreateCategoryRequest{Name: "Tech Talks"})
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "CONFLICT" {
		t.Fatalf("CreateCategory() error = %v, want conflict", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestCreateCategoryRejectsEmptySlug(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := CreateCategory(db, dto.CreateCategoryRequest{Name: "!!!"})
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("CreateCategory() error = %v, want validation error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}
