package shared

import (
	"context"
	"math"
	"reflect"
	"roombook/shared/cache"
	"roombook/shared/constant"
	"roombook/shared/dto"
	"roombook/shared/timezone"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

func CalculateTotalPage(total, limit int) (res int) {
	if total == 0 || limit <= 0 {
		res = 1
	} else {
		res = int(math.Ceil(float64(total) / float64(limit)))
	}

	return res
}

// TransformFields converts the non-zero db-tagged fields of a struct into an update map.
func TransformFields(data interface{}, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := typ.Field(index).Tag.Get("db")
		if fieldName == "" || fieldName == "-" {
			continue
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// BuildCacheKey joins the prefix and parts with the cache key separator.
func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), constant.CacheKeySeparator)
}

// generationWindow outlives any cache TTL so a restarted counter never meets an old entry.
const generationWindow = 30 * 24 * time.Hour

// CacheGeneration returns the current value of the counter at key, "0" when it is missing or unreadable.
// Read it before loading the data an entry is built from and put it in the entry key.
func CacheGeneration(ctx context.Context, redisCache cache.RedisCache, key string) string {
	var generation string

	if err := redisCache.Get(ctx, key, &generation); err != nil || generation == "" {
		return "0"
	}

	return generation
}

// InvalidateGeneration bumps the counter at key and drops every key under prefix.
// An entry saved late by a reader of the old generation is never read again.
func InvalidateGeneration(ctx context.Context, redisCache cache.RedisCache, key, prefix string) {
	if _, err := redisCache.Incr(ctx, key, generationWindow); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to bump cache generation")
	}

	InvalidateCaches(ctx, redisCache, prefix)
}

// InvalidateCaches drops every key under prefix. Failures are logged only.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	pattern := prefix + constant.Asterix

	if err := redisCache.Clear(ctx, pattern); err != nil {
		log.Error().Err(err).Str("pattern", pattern).Msg("failed to invalidate caches")
	}
}
