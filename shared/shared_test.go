package shared_test

import (
	"context"
	"errors"
	"reflect"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/cache/mocks"
	"roombook/shared/constant"
	"roombook/shared/dto"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "zero total returns 1", total: 0, limit: 10, expected: 1},
		{name: "zero limit returns 1", total: 100, limit: 0, expected: 1},
		{name: "negative limit returns 1", total: 100, limit: -5, expected: 1},
		{name: "exact division", total: 100, limit: 10, expected: 10},
		{name: "division with remainder", total: 101, limit: 10, expected: 11},
		{name: "limit greater than total", total: 5, limit: 10, expected: 1},
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
	type updateSlot struct {
		IsEnabled *bool  `db:"is_enabled"`
		Name      string `db:"name"`
		Location  string `db:"location"`
		Ignored   string `db:"-"`
		NoTag     string
	}

	enabled := false

	tests := []struct {
		name     string
		data     interface{}
		expected map[string]any
	}{
		{
			name:     "pointer to false is kept",
			data:     updateSlot{IsEnabled: &enabled, NoTag: "x", Ignored: "y"},
			expected: map[string]any{"is_enabled": &enabled},
		},
		{
			name:     "zero values skipped",
			data:     updateSlot{Name: "Lab"},
			expected: map[string]any{"name": "Lab"},
		},
		{
			name:     "all zero",
			data:     updateSlot{},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := shared.TransformFields(tt.data, "admin")

			if _, ok := result[constant.FieldModifiedAt].(time.Time); !ok {
				t.Error("expected modified_at to be a time.Time")
			}

			assert.Equal(t, "admin", result[constant.FieldModifiedBy])

			delete(result, constant.FieldModifiedAt)
			delete(result, constant.FieldModifiedBy)

			if !reflect.DeepEqual(tt.expected, result) {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestFilterByID(t *testing.T) {
	result := shared.FilterByID("550e8400-e29b-41d4-a716-446655440000", "id", "rooms")

	expected := dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    "id",
				Value:    "550e8400-e29b-41d4-a716-446655440000",
				Operator: dto.FilterOperatorEq,
				Table:    "rooms",
			},
		},
	}

	assert.Equal(t, expected, result)

	where, args := result.GetWhereClause()
	assert.Equal(t, "(rooms.id = :id)", where)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "rooms", shared.BuildCacheKey("rooms"))
	assert.Equal(t, "availability:2025-01-06", shared.BuildCacheKey("availability", "2025-01-06"))
	assert.Equal(t, "rate:1.2.3.4:curl", shared.BuildCacheKey("rate", "1.2.3.4", "curl"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "availability*").Return(nil)
	shared.InvalidateCaches(context.Background(), redisCache, "availability")

	redisCache.EXPECT().Clear(gomock.Any(), "rooms*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), redisCache, "rooms")
}

func TestCacheGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Get(gomock.Any(), "generation:rooms", gomock.Any()).Return(cache.Nil)
	assert.Equal(t, "0", shared.CacheGeneration(context.Background(), redisCache, "generation:rooms"))

	redisCache.EXPECT().
		Get(gomock.Any(), "generation:rooms", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			*value.(*string) = "12"

			return nil
		})
	assert.Equal(t, "12", shared.CacheGeneration(context.Background(), redisCache, "generation:rooms"))
}

func TestInvalidateGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	gomock.InOrder(
		redisCache.EXPECT().Incr(gomock.Any(), "generation:rooms", gomock.Any()).Return(int64(4), nil),
		redisCache.EXPECT().Clear(gomock.Any(), "rooms*").Return(nil),
	)
	shared.InvalidateGeneration(context.Background(), redisCache, "generation:rooms", "rooms")

	redisCache.EXPECT().Incr(gomock.Any(), "generation:rooms", gomock.Any()).Return(int64(0), errors.New("redis down"))
	redisCache.EXPECT().Clear(gomock.Any(), "rooms*").Return(nil)
	shared.InvalidateGeneration(context.Background(), redisCache, "generation:rooms", "rooms")
}
