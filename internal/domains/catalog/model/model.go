package model

import "agenda/shared/model"

const (
	TableName  = "services"
	EntityName = "service"

	FieldID              = "id"
	FieldProfessionalID  = "professional_id"
	FieldCategoryID      = "category_id"
	FieldName            = "name"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldDurationMinutes = "duration_minutes"
	FieldImage           = "image"
	FieldActive          = "active"
)

// Service is a bookable offering owned by a professional.
type Service struct {
	ID               string  `db:"id"`
	ProfessionalID   string  `db:"professional_id"`
	CategoryID       *string `db:"category_id"`
	Name             string  `db:"name"`
	Description      string  `db:"description"`
	Price            float64 `db:"price"`
	DurationMinutes  int     `db:"duration_minutes"`
	Image            string  `db:"image"`
	Active           bool    `db:"active"`
	CategoryName     *string `db:"category_name"     table:"categories" column:"name"`
	ProfessionalName string  `db:"professional_name" table:"users"      column:"name"`
	model.Metadata
}

func (Service) GetJoinQuery() string {
	return "LEFT JOIN categories ON categories.id = services.category_id JOIN users ON users.id = services.professional_id"
}

func (s Service) OwnedBy(userID string) bool {
	return userID != "" && s.ProfessionalID == userID
}
