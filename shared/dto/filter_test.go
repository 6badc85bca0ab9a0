package dto_test

import (
	"testing"

	"bookly/shared/dto"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "equality qualified by table",
			filter:    dto.Filter{Field: "status", Value: "PENDING", Operator: dto.FilterOperatorEq, Table: "appointments"},
			wantWhere: "appointments.status = :status",
			wantArgs:  map[string]any{"status": "PENDING"},
		},
		{
			name:      "custom arg name",
			filter:    dto.Filter{ArgName: "day_start", Field: "start_time", Value: "2025-06-10", Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "start_time >= :day_start",
			wantArgs:  map[string]any{"day_start": "2025-06-10"},
		},
		{
			name:      "like is case insensitive",
			filter:    dto.Filter{Field: "name", Value: "ana", Operator: dto.FilterOperatorLike},
			wantWhere: "LOWER(name) LIKE LOWER(:name)",
			wantArgs:  map[string]any{"name": "%ana%"},
		},
		{
			name:      "in over a slice",
			filter:    dto.Filter{Field: "status", Value: []string{"PENDING", "CONFIRMED"}, Operator: dto.FilterOperatorIn},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "PENDING", "status_1": "CONFIRMED"},
		},
		{
			name:      "in over an empty slice matches nothing",
			filter:    dto.Filter{Field: "id", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in over a scalar binds it",
			filter:    dto.Filter{Field: "id", Value: "a-1", Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id)",
			wantArgs:  map[string]any{"id": "a-1"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "published_at", Operator: dto.FilterIsNull, Table: "outbox_events"},
			wantWhere: "outbox_events.published_at IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Value: 1, Operator: "between"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "business_id", Value: "biz-1", Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "id", Value: 1, Operator: "between"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "s1", Field: "status", Value: "PENDING", Operator: dto.FilterOperatorEq},
					dto.Filter{ArgName: "s2", Field: "status", Value: "CONFIRMED", Operator: dto.FilterOperatorEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(business_id = :business_id AND (status = :s1 OR status = :s2))", where)
	assert.Len(t, args, 3)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
