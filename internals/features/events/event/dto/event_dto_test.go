package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"eventorganizer_backend/internals/features/events/event/model"
)

func TestValidateTimeRange(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		end     time.Time
		wantErr bool
	}{
		{"end after start", start.Add(2 * time.Hour), false},
		{"end equals start", start, true},
		{"end before start", start.Add(-time.Hour), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := CreateEventRequest{Title: "t", StartTime: start, EndTime: tc.end}
			err := r.ValidateTimeRange()
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateTimeRange() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateEventRequestApplyPartial(t *testing.T) {
	locationID := uuid.New()
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	event := model.EventModel{
		EventTitle:       "Original",
		EventDescription: "original description",
		EventStartTime:   start,
		EventEndTime:     start.Add(time.Hour),
		EventLocationID:  &locationID,
		EventIsPublic:    true,
	}

	newTitle := "Renamed"
	UpdateEventRequest{Title: &newTitle}.Apply(&event)

	if event.EventTitle != "Renamed" {
		t.Errorf("title = %s, want Renamed", event.EventTitle)
	}
	if event.EventDescription != "original description" {
		t.Errorf("description changed: %s", event.EventDescription)
	}
	if event.EventLocationID == nil || *event.EventLocationID != locationID {
		t.Errorf("location changed: %v", event.EventLocationID)
	}
	if !event.EventIsPublic {
		t.Error("is_public changed")
	}
}

func TestUpdateEventRequestApplyReferenceSwap(t *testing.T) {
	oldCategory := uuid.New()
	newCategory := uuid.New()
	event := model.EventModel{EventCategoryID: &oldCategory}

	UpdateEventRequest{CategoryID: &newCategory}.Apply(&event)

	if event.EventCategoryID == nil || *event.EventCategoryID != newCategory {
		t.Errorf("category = %v, want %s", event.EventCategoryID, newCategory)
	}
}

func TestUpdateEventRequestApplyVisibility(t *testing.T) {
	event := model.EventModel{EventIsPublic: true}
	hidden := false

	UpdateEventRequest{IsPublic: &hidden}.Apply(&event)

	if event.EventIsPublic {
		t.Error("is_public = true, want false")
	}
}
