package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/infras/s3"
	"agenda/internal/domains/catalog/model"
	"agenda/internal/domains/catalog/model/dto"
	"agenda/internal/domains/catalog/repository"
	"agenda/shared"
	"agenda/shared/cache"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
	gRepo "agenda/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetService    = "service:get"
	cacheGetAllService = "service:gets"
	cacheCountService  = "service:count"
)

const defaultSortColumn = "services.created_at"

var (
	errServiceNotFound      = failure.NotFound("service not found")
	errProfessionalRequired = failure.BadRequestFromString("professional_id is required when an admin creates a service")
	errUnknownReference     = failure.BadRequestFromString("professional or category does not exist")
	errNotServiceOwner      = failure.Forbidden("only the owning professional or an admin can change this service")
	errEmptyUpdate          = failure.BadRequestFromString("update request cannot be empty")
)

var sortableColumns = map[string]string{
	"name":             "services.name",
	"price":            "services.price",
	"duration_minutes": "services.duration_minutes",
	"created_at":       defaultSortColumn,
}

type Catalog interface {
	Create(ctx context.Context, req dto.CreateServiceRequest) (dto.ServiceResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetServicesRequest) (dto.GetServicesResponse, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ServiceResponse, error)
	Update(ctx context.Context, req dto.UpdateServiceRequest, id string) error
	Deactivate(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Catalog
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Catalog, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Catalog {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateServiceRequest) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor := shared.PrincipalFromContext(ctx)

	professionalID := actor.ID
	if actor.IsAdmin() {
		if req.ProfessionalID == constant.Empty {
			return res, errProfessionalRequired
		}

		professionalID = req.ProfessionalID
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return res, err
	}

	service := req.ToModel(actor.ID, professionalID, imageURL)

	if err = s.repo.Insert(ctx, service); err != nil {
		s.deleteImage(ctx, objectName)

		if gRepo.IsForeignKeyViolation(err) {
			return res, errUnknownReference
		}

		log.Error().Err(err).Msg("failed to create service")

		return res, fmt.Errorf("failed to create service: %w", err)
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, req dto.GetServicesRequest) (res dto.GetServicesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(sortableColumns, defaultSortColumn)
	filter := req.ToFilter(shared.PrincipalFromContext(ctx))
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllService, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for services")

		return res, nil
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get services")

		return res, fmt.Errorf("failed to get services: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save services to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountService, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count services")

		return res, fmt.Errorf("failed to count services: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ServiceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetService, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for service")

		return res, nil
	}

	service, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(service)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save service to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateServiceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateServiceRequest{}) {
		return errEmptyUpdate
	}

	current, err := s.findOwned(ctx, id)
	if err != nil {
		return err
	}

	imageURL, objectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	actor := shared.PrincipalFromContext(ctx)

	updatedFields := shared.TransformFields(req, actor.ID)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		s.deleteImage(ctx, objectName)

		if gRepo.IsForeignKeyViolation(err) {
			return errUnknownReference
		}

		log.Error().Err(err).Msg("failed to update service")

		return fmt.Errorf("failed to update service: %w", err)
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName
		if oldObjectName := s.s3.GetObjectNameFromURL(bucketName, current.Image); oldObjectName != constant.Empty {
			s.deleteImage(ctx, oldObjectName)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

// Deactivate hides a service from the catalog. Existing bookings keep referencing it.
func (s *serviceImpl) Deactivate(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Deactivate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.findOwned(ctx, id); err != nil {
		return err
	}

	actor := shared.PrincipalFromContext(ctx)
	active := false

	updatedFields := shared.TransformFields(dto.UpdateServiceRequest{Active: &active}, actor.ID)

	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to deactivate service")

		return fmt.Errorf("failed to deactivate service: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, id string) (model.Service, error) {
	service, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return service, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty {
		return service, errServiceNotFound
	}

	return service, nil
}

func (s *serviceImpl) findOwned(ctx context.Context, id string) (model.Service, error) {
	service, err := s.find(ctx, id)
	if err != nil {
		return service, err
	}

	actor := shared.PrincipalFromContext(ctx)
	if !actor.IsAdmin() && !service.OwnedBy(actor.ID) {
		return service, errNotServiceOwner
	}

	return service, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (url, objectName string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	objectName = uuid.NewString() + filepath.Ext(header.Filename)

	url, err = s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, objectName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload service image")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) deleteImage(ctx context.Context, objectName string) {
	if objectName == constant.Empty {
		return
	}

	if err := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete service image")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetService, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete service from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllService)
		shared.InvalidateCaches(c, s.cache, cacheCountService)
	}()
}
