package dto

import (
	"agenda/internal/domains/category/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
	"strings"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name        string  `json:"name"                  validate:"required,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}

func (c *CreateCategoryRequest) ToModel(user string) model.Category {
	now := timezone.Now()

	return model.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateCategoryRequest struct {
	Name        string  `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=255"`
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	gDto.Metadata
}

func (r *CategoryResponse) FromModel(model model.Category) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetCategoriesResponse) FromModels(models []model.Category, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Categories = make([]CategoryResponse, len(models))
	for i, mod := range models {
		r.Categories[i].FromModel(mod)
	}
}
