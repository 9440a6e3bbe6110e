package dto

import (
	"testing"

	categoryDTO "eventorganizer_backend/internals/features/events/category/dto"
	eventDTO "eventorganizer_backend/internals/features/events/event/dto"
	helper "eventorganizer_backend/internals/helpers"
)

func TestDecodePayloadEventCreate(t *testing.T) {
	data := []byte(`{
		"title": "Go Meetup",
		"description": "monthly meetup",
		"start_time": "2026-09-01T18:00:00Z",
		"end_time": "2026-09-01T21:00:00Z",
		"is_public": true
	}`)

	payload, err := DecodePayload("event", "create", data)
	if err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	in, ok := payload.(eventDTO.CreateEventRequest)
	if !ok {
		t.Fatalf("payload type = %T, want CreateEventRequest", payload)
	}
	if in.Title != "Go Meetup" || !in.IsPublic {
		t.Errorf("unexpected payload: %+v", in)
	}
}

func TestDecodePayloadRejectsUnknownFields(t *testing.T) {
	data := []byte(`{
		"title": "Go Meetup",
		"start_time": "2026-09-01T18:00:00Z",
		"end_time": "2026-09-01T21:00:00Z",
		"sneaky_field": true
	}`)

	_, err := DecodePayload("event", "create", data)
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("DecodePayload() error = %v, want validation error", err)
	}
}

func TestDecodePayloadRejectsInvalidTimeRange(t *testing.T) {
	data := []byte(`{
		"title": "Go Meetup",
		"start_time": "2026-09-01T21:00:00Z",
		"end_time": "2026-09-01T18:00:00Z"
	}`)

	_, err := DecodePayload("event", "create", data)
	ae, ok := helper.AsAppError(err)
	if !ok || ae.Code != "VALIDATION_ERROR" {
		t.Fatalf("DecodePayload() error = %v, want validation error", err)
	}
}

func TestDecodePayloadUnsupportedCombinations(t *testing.T) {
	cases := []struct {
		name        string
		requestType string
		action      string
	}{
		{"category update", "category", "update"},
		{"category delete", "category", "delete"},
		{"location update", "location", "update"},
		{"location delete", "location", "delete"},
		{"unknown type", "venue", "create"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePayload(tc.requestType, tc.action, []byte(`{"name":"Tech"}`))
			ae, ok := helper.AsAppError(err)
			if !ok || ae.Code != "VALIDATION_ERROR" {
				t.Fatalf("DecodePayload(%s, %s) error = %v, want validation error", tc.requestType, tc.action, err)
			}
		})
	}
}

func TestDecodePayloadEventDelete(t *testing.T) {
	for _, data := range []string{"", "{}", "null", "  {}  "} {
		if _, err := DecodePayload("event", "delete", []byte(data)); err != nil {
			t.Errorf("DecodePayload(delete, %q) error = %v, want nil", data, err)
		}
	}

	_, err := DecodePayload("event", "delete", []byte(`{"title":"gone"}`))
	if _, ok := helper.AsAppError(err); !ok {
		t.Fatalf("DecodePayload(delete, payload) error = %v, want validation error", err)
	}
}

func TestDecodePayloadEventUpdatePartial(t *testing.T) {
	payload, err := DecodePayload("event", "update", []byte(`{"title":"New Title"}`))
	if err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	in, ok := payload.(eventDTO.UpdateEventRequest)
	if !ok {
		t.Fatalf("payload type = %T, want UpdateEventRequest", payload)
	}
	if in.Title == nil || *in.Title != "New Title" {
		t.Errorf("Title = %v, want New Title", in.Title)
	}
	if in.StartTime != nil || in.EndTime != nil || in.IsPublic != nil {
		t.Errorf("absent fields should stay nil: %+v", in)
	}
}

func TestDecodePayloadCategoryCreate(t *testing.T) {
	payload, err := DecodePayload("category", "create", []byte(`{"name":"Tech Talks","is_one_time":true}`))
	if err != nil {
		t.Fatalf("DecodePayload() error = %v", err)
	}
	in, ok := payload.(categoryDTO.CreateCategoryRequest)
	if !ok {
		t.Fatalf("payload type = %T, want CreateCategoryRequest", payload)
	}
	if in.Name != "Tech Talks" || !in.IsOneTime {
		t.Errorf("unexpected payload: %+v", in)
	}

	_, err = DecodePayload("category", "create", []byte(`{"name":"x"}`))
	if _, ok := helper.AsAppError(err); !ok {
		t.Fatalf("short name error = %v, want validation error", err)
	}
}
