package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventorganizer_backend/internals/features/events/moderation/dto"
	"eventorganizer_backend/internals/features/events/moderation/model"
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

func requestColumns() []string {
	return []string{
		"request_id", "request_user_id", "request_type", "request_action",
		"request_data", "request_status", "request_event_id",
		"request_reviewed_by", "request_created_at", "request_updated_at",
		"request_deleted_at",
	}
}

func TestReviewProposalForbiddenForUserRole(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := ReviewProposal(db, uuid.New(), "user", uuid.New(), model.StatusApproved)
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "FORBIDDEN" {
		t.Fatalf("ReviewProposal() error = %v, want forbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestReviewProposalInvalidStatusValue(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := ReviewProposal(db, uuid.New(), "moderator", uuid.New(), "maybe")
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("ReviewProposal() error = %v, want validation error", err)
	}
}

func TestReviewProposalNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	requestID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()))

	_, err := ReviewProposal(db, uuid.New(), "moderator", requestID, model.StatusRejected)
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "NOT_FOUND" {
		t.Fatalf("ReviewProposal() error = %v, want not found", err)
	}
}

func TestReviewProposalInvalidStateWhenTerminal(t *testing.T) {
	db, mock := newMockDB(t)
	requestID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()).AddRow(
			requestID, uuid.New(), model.RequestTypeEvent, model.ActionCreate,
			[]byte(`{}`), model.StatusApproved, nil, uuid.New().String(), now, now, now,
		))

	_, err := ReviewProposal(db, uuid.New(), "admin", requestID, model.StatusApproved)
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "INVALID_STATE" {
		t.Fatalf("ReviewProposal() error = %v, want invalid state", err)
	}
}

func TestReviewProposalRejectRetiresWithoutReplay(t *testing.T) {
	db, mock := newMockDB(t)
	requestID := uuid.New()
	submitterID := uuid.New()
	reviewerID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()).AddRow(
			requestID, submitterID, model.RequestTypeEvent, model.ActionCreate,
			[]byte(`{"title":"x"}`), model.StatusPending, nil, nil, now, now, nil,
		))

	mock.ExpectBegin()
	// status + reviewer update, then the soft delete; no entity writes
	mock.ExpectExec(`UPDATE "requests" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "requests" SET "request_deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := ReviewProposal(db, reviewerID, "moderator", requestID, model.StatusRejected)
	if err != nil {
		t.Fatalf("ReviewProposal() error = %v", err)
	}
	if result.Request.RequestStatus != model.StatusRejected {
		t.Errorf("status = %s, want rejected", result.Request.RequestStatus)
	}
	if result.Request.RequestReviewedBy == nil || *result.Request.RequestReviewedBy != reviewerID {
		t.Errorf("reviewed_by = %v, want %s", result.Request.RequestReviewedBy, reviewerID)
	}
	if result.Entity != nil || result.Deleted {
		t.Errorf("rejection must not touch entities: %+v", result)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestReviewProposalApproveFailureLeavesProposalPending(t *testing.T) {
	db, mock := newMockDB(t)
	requestID := uuid.New()
	targetEventID := uuid.New()
	submitterID := uuid.New()
	otherAuthorID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`SELECT \* FROM "requests"`).
		WillReturnRows(sqlmock.NewRows(requestColumns()).AddRow(
			requestID, submitterID, model.RequestTypeEvent, model.ActionDelete,
			[]byte(`{}`), model.StatusPending, targetEventID.String(), nil, now, now, nil,
		))

	mock.ExpectBegin()
	// replay loads the target event, which belongs to someone else
	mock.ExpectQuery(`SELECT \* FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{
			"event_id", "event_title", "event_description", "event_start_time",
			"event_end_time", "event_author_id", "event_location_id",
			"event_category_id", "event_is_public", "event_created_at", "event_updated_at",
		}).AddRow(
			targetEventID, "Someone else's event", "", now, now.Add(time.Hour),
			otherAuthorID.String(), nil, nil, true, now, now,
		))
	mock.ExpectRollback()

	_, err := ReviewProposal(db, uuid.New(), "moderator", requestID, model.StatusApproved)
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "FORBIDDEN" {
		t.Fatalf("ReviewProposal() error = %v, want forbidden", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSubmitProposalRejectsBadCombination(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := SubmitProposal(db, uuid.New(), dto.CreateRequestDTO{
		RequestType: model.RequestTypeCategory,
		Action:      model.ActionDelete,
		Data:        []byte(`{}`),
	})
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("SubmitProposal() error = %v, want validation error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestSubmitProposalUpdateRequiresTargetEvent(t *testing.T) {
	db, mock := newMockDB(t)

	_, err := SubmitProposal(db, uuid.New(), dto.CreateRequestDTO{
		RequestType: model.RequestTypeEvent,
		Action:      model.ActionUpdate,
		Data:        []byte(`{"title":"new"}`),
	})
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("SubmitProposal() error = %v, want validation error", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestSubmitProposalUpdateUnknownEvent(t *testing.T) {
	db, mock := newMockDB(t)
	eventID := uuid.New()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := SubmitProposal(db, uuid.New(), dto.CreateRequestDTO{
		RequestType: model.RequestTypeEvent,
		Action:      model.ActionUpdate,
		Data:        []byte(`{"title":"new"}`),
		EventID:     &eventID,
	})
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "NOT_FOUND" {
		t.Fatalf("SubmitProposal() error = %v, want not found", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestSubmitProposalCreateDefaultsAction(t *testing.T) {
	db, mock := newMockDB(t)
	userID := uuid.New()
	requestID := uuid.New()

	mock.ExpectQuery(`INSERT INTO "requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"request_id"}).AddRow(requestID))

	request, err := SubmitProposal(db, userID, dto.CreateRequestDTO{
		RequestType: model.RequestTypeCategory,
		Data:        []byte(`{"name":"Workshops"}`),
	})
	if err != nil {
		t.Fatalf("SubmitProposal() error = %v", err)
	}
	if request.RequestAction != model.ActionCreate {
		t.Errorf("action = %s, want create", request.RequestAction)
	}
	if request.RequestStatus != model.StatusPending {
		t.Errorf("status = %s, want pending", request.RequestStatus)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}
