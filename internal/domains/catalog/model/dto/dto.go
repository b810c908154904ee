package dto

import (
	"mime/multipart"

	"agenda/internal/domains/catalog/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"

	"github.com/google/uuid"
)

type CreateServiceRequest struct {
	Name            string                `json:"name"             validate:"required,max=100"`
	Description     string                `json:"description"      validate:"omitempty,max=1000"`
	Price           float64               `json:"price"            validate:"gte=0"`
	DurationMinutes int                   `json:"duration_minutes" validate:"required,gt=0,lte=1440"`
	CategoryID      *string               `json:"category_id"      validate:"omitempty,uuid"`
	ProfessionalID  string                `json:"professional_id"  validate:"omitempty,uuid"`
	Image           *multipart.FileHeader `json:"image"            validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File        `json:"-"`
	Active          *bool                 `json:"active"           validate:"omitempty"`
}

func (c *CreateServiceRequest) ToModel(user, professionalID, imageURL string) model.Service {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Service{
		ID:              uuid.NewString(),
		ProfessionalID:  professionalID,
		CategoryID:      c.CategoryID,
		Name:            c.Name,
		Description:     c.Description,
		Price:           c.Price,
		DurationMinutes: c.DurationMinutes,
		Image:           imageURL,
		Active:          active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateServiceRequest struct {
	Name            string                `db:"name"             json:"name"             validate:"omitempty,max=100"`
	Description     string                `db:"description"      json:"description"      validate:"omitempty,max=1000"`
	Price           *float64              `db:"price"            json:"price"            validate:"omitempty,gte=0"`
	DurationMinutes *int                  `db:"duration_minutes" json:"duration_minutes" validate:"omitempty,gt=0,lte=1440"`
	CategoryID      *string               `db:"category_id"      json:"category_id"      validate:"omitempty,uuid"`
	Image           *multipart.FileHeader `json:"image"          validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile       multipart.File        `json:"-"`
	Active          *bool                 `db:"active"           json:"active"           validate:"omitempty"`
}

type ServiceResponse struct {
	ID               string  `json:"id"`
	ProfessionalID   string  `json:"professional_id"`
	ProfessionalName string  `json:"professional_name"`
	CategoryID       *string `json:"category_id"`
	CategoryName     *string `json:"category_name"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	Price            float64 `json:"price"`
	DurationMinutes  int     `json:"duration_minutes"`
	Image            string  `json:"image"`
	Active           bool    `json:"active"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(model model.Service) {
	r.ID = model.ID
	r.ProfessionalID = model.ProfessionalID
	r.ProfessionalName = model.ProfessionalName
	r.CategoryID = model.CategoryID
	r.CategoryName = model.CategoryName
	r.Name = model.Name
	r.Description = model.Description
	r.Price = model.Price
	r.DurationMinutes = model.DurationMinutes
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type GetServicesRequest struct {
	ProfessionalID string `json:"professional_id" validate:"omitempty,uuid"`
	CategoryID     string `json:"category_id"     validate:"omitempty,uuid"`
	Search         string `json:"search"          validate:"omitempty,max=100"`
	Mine           bool   `json:"mine"`
}

// ToFilter narrows the catalog for the caller. Inactive services are only listed to their
// owner asking for their own services, or to an admin.
func (r GetServicesRequest) ToFilter(actor gModel.Principal) gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	professionalID := r.ProfessionalID
	if r.Mine && actor.IsProfessional() {
		professionalID = actor.ID
	}

	if professionalID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldProfessionalID,
			Operator: gDto.FilterOperatorEq,
			Value:    professionalID,
			Table:    model.TableName,
		})
	}

	if r.CategoryID != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldCategoryID,
			Operator: gDto.FilterOperatorEq,
			Value:    r.CategoryID,
			Table:    model.TableName,
		})
	}

	if r.Search != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    r.Search,
			Table:    model.TableName,
		})
	}

	ownView := r.Mine && actor.IsProfessional()
	if !ownView && !actor.IsAdmin() {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		})
	}

	return filter
}
