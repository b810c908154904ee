package model

import "agenda/shared/model"

const (
	TableName  = "categories"
	EntityName = "category"

	FieldID          = "id"
	FieldName        = "name"
	FieldDescription = "description"
)

type Category struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	model.Metadata
}
