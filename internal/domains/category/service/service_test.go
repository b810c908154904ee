package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"agenda/config"
	"agenda/infras/otel/mocks"
	categoryMocks "agenda/internal/domains/category/mocks"
	"agenda/internal/domains/category/model"
	"agenda/internal/domains/category/model/dto"
	"agenda/internal/domains/category/service"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	gDto "agenda/shared/dto"
	"agenda/shared/failure"
)

func setup(t *testing.T) (service.Category, *categoryMocks.MockCategory, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := categoryMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *categoryMocks.MockCategory)
		wantCode  int
	}{
		{
			name: "successful creation",
			setupMock: func(repo *categoryMocks.MockCategory) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, category model.Category) error {
						assert.Equal(t, "Hair", category.Name)
						assert.Equal(t, "admin-1", category.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "duplicate name",
			setupMock: func(repo *categoryMocks.MockCategory) {
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(repo *categoryMocks.MockCategory) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := setup(t)
			tt.setupMock(repo)

			res, err := svc.Create(adminCtx(), dto.CreateCategoryRequest{Name: " Hair "})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "Hair", res.Name)
		})
	}
}

func TestCategoryService_GetAll(t *testing.T) {
	t.Run("cache hit skips repository", func(t *testing.T) {
		svc, _, mockCache := setup(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				res, ok := value.(*dto.GetCategoriesResponse)
				require.True(t, ok)
				res.TotalData = 7

				return nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "")
		require.NoError(t, err)
		assert.Equal(t, 7, res.TotalData)
	})

	t.Run("search by name", func(t *testing.T) {
		svc, repo, mockCache := setup(t)

		mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Category, error) {
				assert.Equal(t, "categories.name", params.SortBy)
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "categories.name ILIKE :name")
				assert.Equal(t, "%hai%", args["name"])

				return []model.Category{{ID: "c1", Name: "Hair"}}, nil
			})

		res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, "hai")
		require.NoError(t, err)
		assert.Len(t, res.Categories, 1)
	})
}

func TestCategoryService_Get(t *testing.T) {
	svc, repo, mockCache := setup(t)

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{ID: "c1", Name: "Hair"}, nil)
	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Category{}, nil)

	res, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Hair", res.Name)

	_, err = svc.Get(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestCategoryService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateCategoryRequest
		setupMock func(repo *categoryMocks.MockCategory)
		wantCode  int
	}{
		{
			name:      "empty request",
			req:       dto.UpdateCategoryRequest{},
			setupMock: func(_ *categoryMocks.MockCategory) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			req:  dto.UpdateCategoryRequest{Name: "Nails"},
			setupMock: func(repo *categoryMocks.MockCategory) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "rename to existing name",
			req:  dto.UpdateCategoryRequest{Name: "Nails"},
			setupMock: func(repo *categoryMocks.MockCategory) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "successful update",
			req:  dto.UpdateCategoryRequest{Name: "Nails"},
			setupMock: func(repo *categoryMocks.MockCategory) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := setup(t)
			tt.setupMock(repo)

			err := svc.Update(adminCtx(), tt.req, "c1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("in use by services", func(t *testing.T) {
		svc, repo, _ := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)})

		err := svc.Delete(adminCtx(), "c1")
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("deleted", func(t *testing.T) {
		svc, repo, _ := setup(t)

		repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(adminCtx(), "c1"))
	})
}
