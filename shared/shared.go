package shared

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"bookly/shared/cache"
	"bookly/shared/constant"
	"bookly/shared/dto"
	"bookly/shared/timezone"

	"github.com/rs/zerolog/log"
)

func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert string to bool")

		return nil
	}

	return &boolValue
}

func CalculateTotalPage(total, limit int) int {
	if total == 0 || limit <= 0 {
		return 1
	}

	return int(math.Ceil(float64(total) / float64(limit)))
}

// TransformFields maps the non-zero db-tagged fields of an update request to columns,
// stamping modified_at and modified_by.
func TransformFields(data any, actor string) map[string]any {
	val := reflect.ValueOf(data)
	typ := val.Type()

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		column := typ.Field(index).Tag.Get("db")
		if column == "" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			updatedFields[column] = field.Elem().Interface()

			continue
		}

		updatedFields[column] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = actor

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

// FilterByBusiness restricts a query to one tenant.
func FilterByBusiness(businessID, table string) dto.Filter {
	return dto.Filter{
		ArgName:  table + "_business_id",
		Field:    constant.FieldBusinessID,
		Value:    businessID,
		Operator: dto.FilterOperatorEq,
		Table:    table,
	}
}

// FilterByIDInBusiness matches a single row owned by businessID. Rows of other tenants
// are indistinguishable from missing rows.
func FilterByIDInBusiness(id, businessID, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
			FilterByBusiness(businessID, table),
		},
	}
}

// ScopeToBusiness prepends the tenant filter to a caller supplied group.
func ScopeToBusiness(filter dto.FilterGroup, businessID, table string) dto.FilterGroup {
	scoped := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters:  []any{FilterByBusiness(businessID, table)},
	}

	if len(filter.Filters) > 0 {
		if filter.Operator == "" {
			filter.Operator = dto.FilterGroupOperatorAnd
		}

		scoped.Filters = append(scoped.Filters, filter)
	}

	return scoped
}

func BusinessIDFromContext(ctx context.Context) string {
	businessID, _ := ctx.Value(constant.ContextKeyBusinessID).(string)

	return businessID
}

func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == "" {
		return constant.ContextGuest
	}

	return userID
}

func BuildCacheKey(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

// BuildCacheKeyWithQuery hashes pagination and filters into a stable key suffix.
func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams, filter dto.FilterGroup) string {
	raw, err := json.Marshal(struct {
		Params dto.QueryParams `json:"params"`
		Filter dto.FilterGroup `json:"filter"`
	}{params, filter})
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal cache query")

		return prefix
	}

	sum := sha256.Sum256(raw)

	return prefix + ":" + hex.EncodeToString(sum[:8])
}

func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}
