package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	s3Mocks "agenda/infras/s3/mocks"
	catalogMocks "agenda/internal/domains/catalog/mocks"
	"agenda/internal/domains/catalog/model"
	"agenda/internal/domains/catalog/model/dto"
	"agenda/internal/domains/catalog/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
)

const (
	bucket  = "agenda-bucket"
	ownerID = "8a7c1a52-7f43-4a55-9b55-0c8a1f1d2e01"
)

type fixture struct {
	svc  service.Catalog
	repo *catalogMocks.MockCatalog
	s3   *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := catalogMocks.NewMockCatalog(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)
	redis := cacheMocks.NewMockRedisCache(ctrl)

	redis.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	redis.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redis.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.S3.BucketName = bucket

	return fixture{
		svc:  service.New(repo, cfg, redis, mocks.NewOtel(), storage),
		repo: repo,
		s3:   storage,
	}
}

func as(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func ownedService() model.Service {
	return model.Service{
		ID:              "svc-1",
		ProfessionalID:  ownerID,
		Name:            "Haircut",
		DurationMinutes: 60,
		Image:           "https://cdn.example.com/service/old.png",
		Active:          true,
	}
}

func TestCatalogService_Create(t *testing.T) {
	req := dto.CreateServiceRequest{Name: "Haircut", Price: 50, DurationMinutes: 45}

	t.Run("professional owns the new service", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, svc model.Service) error {
				assert.Equal(t, ownerID, svc.ProfessionalID)
				assert.True(t, svc.Active)

				return nil
			})

		res, err := f.svc.Create(as(ownerID, constant.RoleProfessional), req)
		require.NoError(t, err)
		assert.Equal(t, 45, res.DurationMinutes)
		assert.Equal(t, ownerID, res.ProfessionalID)
	})

	t.Run("admin must name the professional", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(as("admin-1", constant.RoleAdmin), req)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("admin creates for a professional", func(t *testing.T) {
		f := newFixture(t)

		withPro := req
		withPro.ProfessionalID = ownerID

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, svc model.Service) error {
				assert.Equal(t, ownerID, svc.ProfessionalID)
				assert.Equal(t, "admin-1", svc.CreatedBy)

				return nil
			})

		_, err := f.svc.Create(as("admin-1", constant.RoleAdmin), withPro)
		assert.NoError(t, err)
	})

	t.Run("unknown category removes the uploaded image", func(t *testing.T) {
		f := newFixture(t)

		withImage := req
		withImage.Image = &multipart.FileHeader{Filename: "cut.png"}

		f.s3.EXPECT().
			UploadFile(gomock.Any(), bucket, model.EntityName, gomock.Any(), withImage.Image, gomock.Any()).
			Return("https://cdn.example.com/service/new.png", nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)})
		f.s3.EXPECT().DeleteFile(gomock.Any(), bucket, model.EntityName, gomock.Any()).Return(nil)

		_, err := f.svc.Create(as(ownerID, constant.RoleProfessional), withImage)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		withImage := req
		withImage.Image = &multipart.FileHeader{Filename: "cut.png"}

		f.s3.EXPECT().
			UploadFile(gomock.Any(), bucket, model.EntityName, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("s3 down"))

		_, err := f.svc.Create(as(ownerID, constant.RoleProfessional), withImage)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestCatalogService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.GetServicesRequest
		wantWhere string
	}{
		{
			name:      "public listing only shows active services",
			ctx:       context.Background(),
			req:       dto.GetServicesRequest{Search: "cut"},
			wantWhere: "(services.name ILIKE :name AND services.active = :active)",
		},
		{
			name:      "filter by professional and category",
			ctx:       as("client-1", constant.RoleClient),
			req:       dto.GetServicesRequest{ProfessionalID: ownerID, CategoryID: "cat-1"},
			wantWhere: "(services.professional_id = :professional_id AND services.category_id = :category_id AND services.active = :active)",
		},
		{
			name:      "professional sees all of their own services",
			ctx:       as(ownerID, constant.RoleProfessional),
			req:       dto.GetServicesRequest{Mine: true},
			wantWhere: "(services.professional_id = :professional_id)",
		},
		{
			name:      "admin sees everything",
			ctx:       as("admin-1", constant.RoleAdmin),
			req:       dto.GetServicesRequest{},
			wantWhere: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
			f.repo.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Service, error) {
					where, _ := filter.GetWhereClause()
					assert.Equal(t, tt.wantWhere, where)
					assert.Equal(t, "services.created_at", params.SortBy)

					return []model.Service{ownedService()}, nil
				})

			res, err := f.svc.GetAll(tt.ctx, gDto.QueryParams{Page: 1, Limit: 10, SortBy: "1; DROP TABLE services"}, tt.req)
			require.NoError(t, err)
			assert.Len(t, res.Services, 1)
		})
	}
}

func TestCatalogService_Update(t *testing.T) {
	name := "Beard trim"

	t.Run("someone else's service", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedService(), nil)

		err := f.svc.Update(as("other-pro", constant.RoleProfessional), dto.UpdateServiceRequest{Name: name}, "svc-1")
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(as(ownerID, constant.RoleProfessional), dto.UpdateServiceRequest{}, "svc-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("missing service", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)

		err := f.svc.Update(as(ownerID, constant.RoleProfessional), dto.UpdateServiceRequest{Name: name}, "svc-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("new image replaces the old one", func(t *testing.T) {
		f := newFixture(t)
		header := &multipart.FileHeader{Filename: "new.png"}

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedService(), nil)
		f.s3.EXPECT().
			UploadFile(gomock.Any(), bucket, model.EntityName, gomock.Any(), header, gomock.Any()).
			Return("https://cdn.example.com/service/new.png", nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, name, fields[model.FieldName])
				assert.Equal(t, "https://cdn.example.com/service/new.png", fields[model.FieldImage])

				return nil
			})
		f.s3.EXPECT().GetObjectNameFromURL(bucket, ownedService().Image).Return("old.png")
		f.s3.EXPECT().DeleteFile(gomock.Any(), bucket, model.EntityName, "old.png").Return(nil)

		err := f.svc.Update(as(ownerID, constant.RoleProfessional), dto.UpdateServiceRequest{Name: name, Image: header}, "svc-1")
		assert.NoError(t, err)
	})
}

func TestCatalogService_Deactivate(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(ownedService(), nil)
	f.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			active, ok := fields[model.FieldActive].(*bool)
			require.True(t, ok)
			assert.False(t, *active)

			return nil
		})

	assert.NoError(t, f.svc.Deactivate(as(ownerID, constant.RoleProfessional), "svc-1"))
}
