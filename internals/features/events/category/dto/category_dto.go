package dto

import (
	"time"

	"eventorganizer_backend/internals/features/events/category/model"
)

type CategoryDTO struct {
	CategoryID        string    `json:"category_id"`
	CategoryName      string    `json:"category_name"`
	CategorySlug      string    `json:"category_slug"`
	CategoryIsOneTime bool      `json:"category_is_one_time"`
	CategoryEventID   *string   `json:"category_event_id,omitempty"`
	CategoryCreatedAt time.Time `json:"category_created_at"`
}

// CreateCategoryRequest is also the (category, create) moderation payload.
// The slug is always derived server-side from the name.
type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	IsOneTime bool   `json:"is_one_time"`
}

type UpdateCategoryRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	IsOneTime *bool   `json:"is_one_time,omitempty"`
}

func ToCategoryDTO(m model.CategoryModel) CategoryDTO {
	var eventID *string
	if m.CategoryEventID != nil {
		s := m.CategoryEventID.String()
		eventID = &s
	}
	return CategoryDTO{
		CategoryID:        m.CategoryID.String(),
		CategoryName:      m.CategoryName,
		CategorySlug:      m.CategorySlug,
		CategoryIsOneTime: m.CategoryIsOneTime,
		CategoryEventID:   eventID,
		CategoryCreatedAt: m.CategoryCreatedAt,
	}
}

func ToCategoryDTOs(categories []model.CategoryModel) []CategoryDTO {
	result := make([]CategoryDTO, 0, len(categories))
	for _, m := range categories {
		result = append(result, ToCategoryDTO(m))
	}
	return result
}
