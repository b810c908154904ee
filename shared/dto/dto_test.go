package dto_test

import (
	"agenda/shared/constant"
	"agenda/shared/dto"
	"agenda/shared/model"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: "user-1"})

	assert.True(t, mustParse(t, metadata.CreatedAt).Equal(createdAt))
	assert.Equal(t, "user-1", metadata.CreatedBy)
	assert.Empty(t, metadata.ModifiedAt, "zero modification time renders empty")
	assert.Empty(t, metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		paginate bool
		want     dto.QueryParams
	}{
		{
			name:     "defaults when paginating",
			query:    "",
			paginate: true,
			want:     dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:  "no defaults without pagination",
			query: "",
			want:  dto.QueryParams{},
		},
		{
			name:     "explicit values",
			query:    "?page=3&limit=25&sort_by=name&sort_dir=desc",
			paginate: true,
			want:     dto.QueryParams{Page: 3, Limit: 25, SortBy: "name", SortDir: dto.SortDirDesc},
		},
		{
			name:     "limit capped",
			query:    "?limit=1000",
			paginate: true,
			want:     dto.QueryParams{Page: 1, Limit: constant.MaxValueLimit},
		},
		{
			name:     "invalid numbers and direction ignored",
			query:    "?page=-1&limit=abc&sort_dir=sideways",
			paginate: true,
			want:     dto.QueryParams{Page: 1, Limit: constant.DefaultValueLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var params dto.QueryParams
			params.FromRequest(httptest.NewRequest("GET", "/v1/services"+tt.query, nil), tt.paginate)

			assert.Equal(t, tt.want, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 40, dto.QueryParams{Page: 5, Limit: 10}.Offset())
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
}

func TestQueryParams_RestrictSort(t *testing.T) {
	allowed := map[string]string{"name": "services.name", "price": "services.price"}

	params := dto.QueryParams{SortBy: "price"}
	params.RestrictSort(allowed, "services.created_at")
	assert.Equal(t, dto.QueryParams{SortBy: "services.price", SortDir: dto.SortDirAsc}, params)

	params = dto.QueryParams{SortBy: "password", SortDir: dto.SortDirDesc}
	params.RestrictSort(allowed, "services.created_at")
	assert.Equal(t, dto.QueryParams{SortBy: "services.created_at", SortDir: dto.SortDirDesc}, params)
}

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}

	return parsed
}
