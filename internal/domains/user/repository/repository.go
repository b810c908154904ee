package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"agenda/infras/otel"
	"agenda/infras/postgres"
	"agenda/internal/domains/user/model"
	gDto "agenda/shared/dto"
	gRepo "agenda/shared/repository"
	"context"
)

type User interface {
	Insert(ctx context.Context, user model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

// Users are never hard deleted, so the generic store is exposed without Delete.
type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, tracer otel.Otel) User {
	return &repositoryImpl{gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, tracer)}
}
