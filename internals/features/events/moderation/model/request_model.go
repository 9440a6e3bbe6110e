package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	eventModel "eventorganizer_backend/internals/features/events/event/model"
	userModel "eventorganizer_backend/internals/features/users/user/model"
)

// Target entity kinds a proposal may mutate.
const (
	RequestTypeEvent    = "event"
	RequestTypeCategory = "category"
	RequestTypeLocation = "location"
)

// Proposal actions.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Proposal statuses. pending is the only non-terminal status; terminal
// rows are soft-deleted in the same transaction that sets the status, which
// is what removes them from every regular lookup.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// RequestModel is a pending change proposal: an entity mutation serialized
// as JSON, waiting for a moderator/admin to replay or reject it.
type RequestModel struct {
	RequestID         uuid.UUID      `gorm:"column:request_id;type:uuid;default:gen_random_uuid();primaryKey" json:"request_id"`
	RequestUserID     uuid.UUID      `gorm:"column:request_user_id;type:uuid;not null;index" json:"request_user_id"`
	RequestType       string         `gorm:"column:request_type;type:varchar(20);not null" json:"request_type"`
	RequestAction     string         `gorm:"column:request_action;type:varchar(20);not null;default:'create'" json:"request_action"`
	RequestData       datatypes.JSON `gorm:"column:request_data;not null" json:"request_data"`
	RequestStatus     string         `gorm:"column:request_status;type:varchar(20);not null;default:'pending'" json:"request_status"`
	RequestEventID    *uuid.UUID     `gorm:"column:request_event_id;type:uuid" json:"request_event_id"`
	RequestReviewedBy *uuid.UUID     `gorm:"column:request_reviewed_by;type:uuid" json:"request_reviewed_by"`
	RequestCreatedAt  time.Time      `gorm:"column:request_created_at;autoCreateTime" json:"request_created_at"`
	RequestUpdatedAt  time.Time      `gorm:"column:request_updated_at;autoUpdateTime" json:"request_updated_at"`
	RequestDeletedAt  gorm.DeletedAt `gorm:"column:request_deleted_at;index" json:"-"`

	User  *userModel.UserModel   `gorm:"foreignKey:RequestUserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Event *eventModel.EventModel `gorm:"foreignKey:RequestEventID;references:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RequestModel) TableName() string {
	return "requests"
}

// IsTerminal reports whether the proposal already left the pending state.
func (r RequestModel) IsTerminal() bool {
	return r.RequestStatus != StatusPending || r.RequestDeletedAt.Valid
}
