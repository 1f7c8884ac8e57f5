package shared

import (
	"context"
	"strconv"
	"strings"

	"lodge/shared/cache"
	"lodge/shared/constant"
	"lodge/shared/dto"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses optional boolean query values. Empty or malformed input yields nil.
func ConvertStringToBool(value string) *bool {
	if value == constant.Empty {
		return nil
	}

	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("ignoring malformed boolean")

		return nil
	}

	return &b
}

func CalculateTotalPage(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// Paginate slices items according to the page and limit of params. Out of range pages yield an empty slice.
func Paginate[T any](items []T, params dto.QueryParams) []T {
	if params.Limit <= 0 {
		return items
	}

	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}

	end := min(start+params.Limit, len(items))

	return items[start:end]
}

// BuildCacheKey joins a prefix and its parts with ':'.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + ":" + strings.Join(parts, ":")
}

// InvalidateCaches clears every key under prefix, logging instead of failing.
func InvalidateCaches(ctx context.Context, c cache.RedisCache, prefix string) {
	if err := c.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
