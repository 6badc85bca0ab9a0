package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/otel/mocks"
	s3Mocks "bookly/infras/s3/mocks"
	appointmentMocks "bookly/internal/domains/appointment/mocks"
	"bookly/internal/domains/availability"
	businessMocks "bookly/internal/domains/business/mocks"
	"bookly/internal/domains/business/model"
	"bookly/internal/domains/business/model/dto"
	"bookly/internal/domains/business/service"
	"bookly/internal/domains/plan"
	professionalMocks "bookly/internal/domains/professional/mocks"
	cacheMocks "bookly/shared/cache/mocks"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	"bookly/shared/timezone"
)

const (
	businessID = "biz-1"
	pngLogo    = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="
)

type fixture struct {
	svc              service.Business
	repo             *businessMocks.MockBusiness
	professionalRepo *professionalMocks.MockProfessional
	appointmentRepo  *appointmentMocks.MockAppointment
	storage          *s3Mocks.MockS3
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:             businessMocks.NewMockBusiness(ctrl),
		professionalRepo: professionalMocks.NewMockProfessional(ctrl),
		appointmentRepo:  appointmentMocks.NewMockAppointment(ctrl),
		storage:          s3Mocks.NewMockS3(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.professionalRepo, f.appointmentRepo, plan.NewGate(plan.DefaultTable()), f.storage, cfg, mockCache, mocks.NewOtel())

	return f
}

func tenantContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")

	return context.WithValue(ctx, constant.ContextKeyBusinessID, businessID)
}

func studio() model.Business {
	return model.Business{
		ID:         businessID,
		Name:       "Studio",
		Slug:       "studio",
		Timezone:   "America/Sao_Paulo",
		Plan:       plan.TierStarter,
		PlanStatus: plan.StatusActive,
		LogoURL:    "https://cdn.example.com/logos/biz-1/old.png",
	}
}

func TestBusinessService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "returns default working hours when none are configured",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
			},
		},
		{
			name: "missing business",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Business{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(tenantContext())
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, businessID, res.ID)
			assert.Equal(t, "America/Sao_Paulo", res.Timezone)
			assert.Equal(t, availability.DefaultWorkingHours(), res.WorkingHours)
		})
	}
}

func TestBusinessService_GetBySlug(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Business, error) {
			require.Len(t, filter.Filters, 1)
			assert.Equal(t, model.FieldSlug, filter.Filters[0].(gDto.Filter).Field)

			return studio(), nil
		})

	res, err := f.svc.GetBySlug(context.Background(), "studio")
	require.NoError(t, err)
	assert.Equal(t, businessID, res.ID)
	assert.Equal(t, "studio", res.Slug)
}

func TestBusinessService_UpdateWorkingHours(t *testing.T) {
	f := newFixture(t)

	invalid := dto.UpdateWorkingHoursRequest{WorkingHours: availability.WorkingHours{
		Days: map[string][]availability.Range{"monday": {{Open: "18:00", Close: "09:00"}}},
	}}

	err := f.svc.UpdateWorkingHours(tenantContext(), invalid)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, availability.DefaultWorkingHours(), fields[model.FieldWorkingHours])
			assert.Equal(t, "owner-1", fields[constant.FieldModifiedBy])

			return nil
		})

	assert.NoError(t, f.svc.UpdateWorkingHours(tenantContext(), dto.UpdateWorkingHoursRequest{WorkingHours: availability.DefaultWorkingHours()}))
}

func TestBusinessService_Update(t *testing.T) {
	f := newFixture(t)
	name := "Studio Two"

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, name, fields[model.FieldName])
			assert.NotContains(t, fields, model.FieldTimezone)

			return nil
		})

	assert.NoError(t, f.svc.Update(tenantContext(), dto.UpdateBusinessRequest{Name: &name}))
}

func TestBusinessService_UploadLogo(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil).Times(2)
	f.storage.EXPECT().UploadFileBytes(gomock.Any(), "logos/"+businessID, gomock.Any(), "image/png", gomock.Any()).
		DoAndReturn(func(_ context.Context, directory, fileName, _ string, data []byte) (string, error) {
			assert.True(t, strings.HasSuffix(fileName, ".png"))
			assert.NotEmpty(t, data)

			return "https://cdn.example.com/" + directory + "/" + fileName, nil
		})
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.storage.EXPECT().ObjectKeyFromURL(studio().LogoURL).Return("logos/biz-1/old.png")
	f.storage.EXPECT().DeleteFile(gomock.Any(), "logos/biz-1/old.png").Return(errors.New("already gone"))

	res, err := f.svc.UploadLogo(tenantContext(), dto.UploadLogoRequest{Logo: pngLogo})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.LogoURL, "https://cdn.example.com/logos/biz-1/"))

	_, err = f.svc.UploadLogo(tenantContext(), dto.UploadLogoRequest{Logo: "data:image/gif;base64,R0lGODlh"})
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestBusinessService_Usage(t *testing.T) {
	f := newFixture(t)

	expired := timezone.Now().Add(-time.Hour)
	business := studio()
	business.PlanStatus = plan.StatusTrial
	business.TrialEndsAt = &expired

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
	f.professionalRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
	f.appointmentRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(12, nil)

	res, err := f.svc.Usage(tenantContext())
	require.NoError(t, err)

	assert.Equal(t, plan.TierFreemium, res.Plan)
	assert.Equal(t, plan.StatusTrial, res.PlanStatus)
	assert.Equal(t, dto.ResourceUsage{Current: 1, Limit: 1}, res.Professionals)
	assert.Equal(t, dto.ResourceUsage{Current: 12, Limit: 20}, res.Appointments)
	assert.Len(t, res.Month, len("2006-01"))
}

func TestBusinessService_SetPlan(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(studio(), nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, plan.TierProfessional, fields[model.FieldPlan])
			assert.Equal(t, plan.StatusActive, fields[model.FieldPlanStatus])
			assert.Equal(t, constant.ContextSystem, fields[constant.FieldModifiedBy])

			return nil
		})

	err := f.svc.SetPlan(context.Background(), dto.SetPlanRequest{Plan: plan.TierProfessional, Status: plan.StatusActive}, businessID)
	assert.NoError(t, err)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Business{}, nil)

	err = f.svc.SetPlan(context.Background(), dto.SetPlanRequest{Plan: plan.TierProfessional, Status: plan.StatusActive}, "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
