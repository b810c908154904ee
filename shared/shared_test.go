package shared_test

import (
	"agenda/shared"
	cacheMocks "agenda/shared/cache/mocks"
	"agenda/shared/constant"
	"agenda/shared/dto"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *bool
	}{
		{name: "empty string returns nil", input: "", expected: nil},
		{name: "true", input: "true", expected: boolPtr(true)},
		{name: "numeric false", input: "0", expected: boolPtr(false)},
		{name: "upper case", input: "TRUE", expected: boolPtr(true)},
		{name: "invalid string returns nil", input: "maybe", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.ConvertStringToBool(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", *result)
				}

				return
			}

			if result == nil {
				t.Errorf("expected %v, got nil", *tt.expected)
			} else if *result != *tt.expected {
				t.Errorf("expected %v, got %v", *tt.expected, *result)
			}
		})
	}
}

func TestConvertStringToNumbers(t *testing.T) {
	if v, err := shared.ConvertStringToInt(" 45 "); err != nil || v != 45 {
		t.Errorf("expected 45, got %d (%v)", v, err)
	}

	if _, err := shared.ConvertStringToInt("forty"); err == nil {
		t.Error("expected error for non numeric input")
	}

	if v, err := shared.ConvertStringToFloat("150.50"); err != nil || v != 150.5 {
		t.Errorf("expected 150.5, got %f (%v)", v, err)
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.CalculateTotalPage(tt.total, tt.limit)
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestTransformFields(t *testing.T) {
	type cancelFields struct {
		Status      string  `db:"status"`
		Reason      *string `db:"cancellation_reason"`
		CancelledBy *string `db:"cancelled_by"`
		Ignored     string
	}

	reason := "client asked"
	result := shared.TransformFields(cancelFields{Status: "CANCELLED", Reason: &reason, Ignored: "x"}, "user-1")

	if result["status"] != "CANCELLED" {
		t.Errorf("expected status CANCELLED, got %v", result["status"])
	}

	if !reflect.DeepEqual(result["cancellation_reason"], &reason) {
		t.Errorf("expected reason pointer, got %v", result["cancellation_reason"])
	}

	if _, ok := result["cancelled_by"]; ok {
		t.Error("nil pointer fields must be skipped")
	}

	if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
		t.Error("expected modified_at to be a time.Time")
	}

	if result[constant.FieldModifiedBy] != "user-1" {
		t.Errorf("expected modified_by user-1, got %v", result[constant.FieldModifiedBy])
	}

	if len(result) != 4 {
		t.Errorf("expected 4 fields, got %d: %v", len(result), result)
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("123", "id", "bookings")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "id", Value: "123", Operator: dto.FilterOperatorEq, Table: "bookings"},
		},
	}

	if !reflect.DeepEqual(result, expected) {
		t.Errorf("expected %+v, got %+v", expected, result)
	}
}

func TestBuildCacheKey(t *testing.T) {
	if key := shared.BuildCacheKey("booking:slots", "svc-1", "2030-01-01"); key != "booking:slots:svc-1:2030-01-01" {
		t.Errorf("unexpected key %s", key)
	}

	if key := shared.BuildCacheKey("category:gets"); key != "category:gets" {
		t.Errorf("unexpected key %s", key)
	}
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	filter := shared.FilterByID("svc-1", "id", "services")

	first := shared.BuildCacheKeyWithQuery("service:gets", params, filter)
	second := shared.BuildCacheKeyWithQuery("service:gets", params, filter)
	other := shared.BuildCacheKeyWithQuery("service:gets", dto.QueryParams{Page: 2, Limit: 10}, filter)

	if first != second {
		t.Errorf("expected stable key, got %s and %s", first, second)
	}

	if first == other {
		t.Error("expected different pages to produce different keys")
	}

	if !strings.HasPrefix(first, "service:gets:") {
		t.Errorf("expected key to keep its prefix, got %s", first)
	}
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "booking:gets*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "booking:gets")

	mockCache.EXPECT().Clear(gomock.Any(), "booking:count*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "booking:count")
}

func TestPrincipalFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

	principal := shared.PrincipalFromContext(ctx)
	if principal.ID != "user-1" || !principal.IsAdmin() {
		t.Errorf("unexpected principal %+v", principal)
	}

	if anonymous := shared.PrincipalFromContext(context.Background()); anonymous.ID != "" || anonymous.IsAdmin() {
		t.Errorf("expected empty principal, got %+v", anonymous)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
