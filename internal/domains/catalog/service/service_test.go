package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/otel/mocks"
	catalogMocks "bookly/internal/domains/catalog/mocks"
	"bookly/internal/domains/catalog/model"
	"bookly/internal/domains/catalog/model/dto"
	"bookly/internal/domains/catalog/service"
	cacheMocks "bookly/shared/cache/mocks"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
)

const (
	businessID = "biz-1"
	userID     = "user-1"
)

func tenantContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyBusinessID, businessID)
}

func newService(t *testing.T) (service.Catalog, *catalogMocks.MockCatalog, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := catalogMocks.NewMockCatalog(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestCatalogService_Create(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	tests := []struct {
		name      string
		req       dto.CreateServiceRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation scoped to business",
			req:  dto.CreateServiceRequest{Name: "Haircut", DurationMinutes: 45, Price: 30},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, m model.Service) error {
						assert.Equal(t, businessID, m.BusinessID)
						assert.Equal(t, userID, m.CreatedBy)
						assert.True(t, m.Active)

						return nil
					})
			},
		},
		{
			name: "repository error",
			req:  dto.CreateServiceRequest{Name: "Haircut", DurationMinutes: 45},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(tenantContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.Name, res.Name)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestCatalogService_GetAll(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	tests := []struct {
		name      string
		setupMock func()
		wantTotal int
		wantErr   bool
	}{
		{
			name: "cache miss reads repository",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				mockRepo.EXPECT().
					GetAll(gomock.Any(), params, gomock.Any()).
					Return([]model.Service{{ID: "s1", Name: "Cut"}, {ID: "s2", Name: "Color"}}, nil)
			},
			wantTotal: 2,
		},
		{
			name: "count error",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetAll(tenantContext(), params, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Len(t, res.Services, tt.wantTotal)
			assert.Equal(t, 1, res.TotalPage)
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), "service:get:biz-1:s1", gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{ID: "s1", BusinessID: businessID}, nil)
			},
		},
		{
			name: "other tenant looks missing",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Service{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Get(tenantContext(), "s1")

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestCatalogService_UpdateAndDelete(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	name := "Beard trim"

	t.Run("update missing service", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.Update(tenantContext(), dto.UpdateServiceRequest{Name: &name}, "s1")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("update writes only provided fields", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, name, fields[model.FieldName])
				assert.NotContains(t, fields, model.FieldPrice)
				assert.Equal(t, userID, fields[constant.FieldModifiedBy])

				return nil
			})

		assert.NoError(t, svc.Update(tenantContext(), dto.UpdateServiceRequest{Name: &name}, "s1"))
	})

	t.Run("delete", func(t *testing.T) {
		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, svc.Delete(tenantContext(), "s1"))
	})
}

func TestCatalogService_ListActive(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Service{{ID: "s1", Name: "Cut", DurationMinutes: 30, Active: true}}, nil)

	res, err := svc.ListActive(context.Background(), businessID)

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 30, res[0].DurationMinutes)
}
