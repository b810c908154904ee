package service

import (
	"agenda/config"
	"agenda/infras/otel"
	"agenda/internal/domains/category/model"
	"agenda/internal/domains/category/model/dto"
	"agenda/internal/domains/category/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gRepo "agenda/shared/repository"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCategory    = "category:get"
	cacheGetAllCategory = "category:gets"

	msgNameTaken = "category name already exists"
)

var sortableColumns = map[string]string{
	"name":       model.TableName + "." + model.FieldName,
	"created_at": model.TableName + "." + constant.FieldCreatedAt,
}

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, search string) (dto.GetCategoriesResponse, error)
	Get(ctx context.Context, id string) (dto.CategoryResponse, error)
	Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Category
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Category, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := shared.PrincipalFromContext(ctx).ID
	category := req.ToModel(user)

	if err = s.repo.Insert(ctx, category); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return res, failure.Conflict(msgNameTaken)
		}

		log.Error().Err(err).Msg("failed to create category")

		return res, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidate(ctx, "")

	res.FromModel(category)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, search string) (res dto.GetCategoriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(sortableColumns, sortableColumns[model.FieldName])

	filter := gDto.FilterGroup{}
	if search != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    search,
			Table:    model.TableName,
		})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCategory, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for categories")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count categories")

		return res, fmt.Errorf("failed to count categories: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get categories")

		return res, fmt.Errorf("failed to get categories: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save categories to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCategory, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	category, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get category")

		return res, fmt.Errorf("failed to get category: %w", err)
	}

	if category.ID == "" {
		return res, failure.NotFound("category not found")
	}

	res.FromModel(category)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save category to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCategoryRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateCategoryRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, shared.PrincipalFromContext(ctx).ID)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		if gRepo.IsUniqueViolation(err) {
			return failure.Conflict(msgNameTaken)
		}

		log.Error().Err(err).Msg("failed to update category")

		return fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureExists(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("category is still used by services")
		}

		log.Error().Err(err).Msg("failed to delete category")

		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) ensureExists(ctx context.Context, filter gDto.FilterGroup) error {
	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if category exists")

		return fmt.Errorf("failed to check if category exists: %w", err)
	}

	if !exist {
		return failure.NotFound("category not found")
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCategory, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete category from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCategory)
	}()
}
