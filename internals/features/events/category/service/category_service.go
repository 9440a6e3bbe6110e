package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"eventorganizer_backend/internals/features/events/category/dto"
	"eventorganizer_backend/internals/features/events/category/model"
	helper "eventorganizer_backend/internals/helpers"
)

// CreateCategory derives the slug from the name and persists the row.
// A taken name or slug fails with Conflict, both when caught by the
// pre-check and when the unique index wins a race.
func CreateCategory(tx *gorm.DB, in dto.CreateCategoryRequest) (model.CategoryModel, error) {
	var category model.CategoryModel

	name := strings.TrimSpace(in.Name)
	slug := helper.GenerateSlug(name)
	if slug == "" {
		return category, helper.ErrValidation("category name yields an empty slug", map[string][]string{
			"name": {"must contain at least one alphanumeric character"},
		})
	}

	taken, err := helper.IsSlugTaken(tx, "categories", "category_slug", slug)
	if err != nil {
		return category, err
	}
	if taken {
		return category, helper.ErrConflict("category name or slug already exists")
	}

	var cnt int64
	if err := tx.Model(&model.CategoryModel{}).
		Where("LOWER(category_name) = LOWER(?)", name).
		Count(&cnt).Error; err != nil {
		return category, err
	}
	if cnt > 0 {
		return category, helper.ErrConflict("category name or slug already exists")
	}

	category = model.CategoryModel{
		CategoryName:      name,
		CategorySlug:      slug,
		CategoryIsOneTime: in.IsOneTime,
	}
	if err := tx.Create(&category).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.CategoryModel{}, helper.ErrConflict("category name or slug already exists")
		}
		return model.CategoryModel{}, err
	}
	return category, nil
}

// UpdateCategory patches name (and re-derives the slug) or the one-time flag.
func UpdateCategory(tx *gorm.DB, categoryID uuid.UUID, in dto.UpdateCategoryRequest) (model.CategoryModel, error) {
	var category model.CategoryModel
	if err := tx.First(&category, "category_id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return category, helper.ErrNotFound("category not found")
		}
		return category, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		slug := helper.GenerateSlug(name)
		if slug == "" {
			return model.CategoryModel{}, helper.ErrValidation("category name yields an empty slug", map[string][]string{
				"name": {"must contain at least one alphanumeric character"},
			})
		}
		var cnt int64
		if err := tx.Model(&model.CategoryModel{}).
			Where("(LOWER(category_name) = LOWER(?) OR category_slug = ?) AND category_id <> ?", name, slug, categoryID).
			Count(&cnt).Error; err != nil {
			return model.CategoryModel{}, err
		}
		if cnt > 0 {
			return model.CategoryModel{}, helper.ErrConflict("category name or slug already exists")
		}
		category.CategoryName = name
		category.CategorySlug = slug
	}
	if in.IsOneTime != nil {
		category.CategoryIsOneTime = *in.IsOneTime
	}

	if err := tx.Save(&category).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return model.CategoryModel{}, helper.ErrConflict("category name or slug already exists")
		}
		return model.CategoryModel{}, err
	}
	return category, nil
}

// DeleteCategory removes the category. Events keep existing with their
// category reference cleared by the SET NULL constraint.
func DeleteCategory(tx *gorm.DB, categoryID uuid.UUID) error {
	res := tx.Delete(&model.CategoryModel{}, "category_id = ?", categoryID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.ErrNotFound("category not found")
	}
	return nil
}
