package dto

import (
	"agenda/internal/domains/user/model"
	"agenda/shared"
	gDto "agenda/shared/dto"
	"time"
)

type UserResponse struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     *string    `json:"phone,omitempty"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	Active    bool       `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Name = model.Name
	r.Phone = model.Phone
	r.Role = model.Role
	r.LastLogin = model.LastLogin
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserRequest is the admin edit of another account.
type UpdateUserRequest struct {
	Name   *string `db:"name"   json:"name,omitempty"   validate:"omitempty,min=2,max=100"`
	Phone  *string `db:"phone"  json:"phone,omitempty"  validate:"omitempty,e164"`
	Role   *string `db:"role"   json:"role,omitempty"   validate:"omitempty,oneof=client professional admin"`
	Active *bool   `db:"active" json:"active,omitempty"`
}

type GetUsersRequest struct {
	Email string `json:"email" validate:"omitempty,email"`
	Role  string `json:"role"  validate:"omitempty,oneof=client professional admin superadmin"`
}

// ToFilter only includes the fields that were provided.
func (r GetUsersRequest) ToFilter() gDto.FilterGroup {
	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if r.Email != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorEq,
			Value:    r.Email,
			Table:    model.TableName,
		})
	}

	if r.Role != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Operator: gDto.FilterOperatorEq,
			Value:    r.Role,
			Table:    model.TableName,
		})
	}

	return filter
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
