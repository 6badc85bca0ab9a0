package service_test

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/metrics"
	"bookly/infras/otel/mocks"
	appointmentMocks "bookly/internal/domains/appointment/mocks"
	"bookly/internal/domains/appointment/model"
	"bookly/internal/domains/appointment/model/dto"
	"bookly/internal/domains/appointment/service"
	"bookly/internal/domains/availability"
	businessMocks "bookly/internal/domains/business/mocks"
	businessModel "bookly/internal/domains/business/model"
	catalogMocks "bookly/internal/domains/catalog/mocks"
	catalogModel "bookly/internal/domains/catalog/model"
	customerMocks "bookly/internal/domains/customer/mocks"
	customerModel "bookly/internal/domains/customer/model"
	outboxMocks "bookly/internal/domains/outbox/mocks"
	outboxModel "bookly/internal/domains/outbox/model"
	"bookly/internal/domains/plan"
	professionalMocks "bookly/internal/domains/professional/mocks"
	professionalModel "bookly/internal/domains/professional/model"
	cacheMocks "bookly/shared/cache/mocks"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	"bookly/shared/timezone"
)

const (
	businessID     = "biz-1"
	serviceID      = "6f1c1d4e-8d0a-4a39-9a53-6ad1b6f0a001"
	professionalID = "6f1c1d4e-8d0a-4a39-9a53-6ad1b6f0a002"
	appointmentID  = "appt-1"

	// bookingDay is a Monday.
	bookingDay = "2030-06-10"
)

type fixture struct {
	svc              service.Appointment
	repo             *appointmentMocks.MockAppointment
	businessRepo     *businessMocks.MockBusiness
	catalogRepo      *catalogMocks.MockCatalog
	professionalRepo *professionalMocks.MockProfessional
	customerRepo     *customerMocks.MockCustomer
	outboxRepo       *outboxMocks.MockOutbox
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:             appointmentMocks.NewMockAppointment(ctrl),
		businessRepo:     businessMocks.NewMockBusiness(ctrl),
		catalogRepo:      catalogMocks.NewMockCatalog(ctrl),
		professionalRepo: professionalMocks.NewMockProfessional(ctrl),
		customerRepo:     customerMocks.NewMockCustomer(ctrl),
		outboxRepo:       outboxMocks.NewMockOutbox(ctrl),
	}

	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.SlotIntervalMinutes = 30

	f.svc = service.New(
		f.repo,
		f.businessRepo,
		f.catalogRepo,
		f.professionalRepo,
		f.customerRepo,
		f.outboxRepo,
		plan.NewGate(plan.DefaultTable()),
		metrics.New(),
		cfg,
		mockCache,
		mocks.NewOtel(),
	)

	return f
}

func tenantContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "owner-1")

	return context.WithValue(ctx, constant.ContextKeyBusinessID, businessID)
}

func runInTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	return fn(nil)
}

func mustDay(t *testing.T, value string) time.Time {
	t.Helper()

	day, err := timezone.ParseDay(value)
	require.NoError(t, err)

	return day
}

func freemiumBusiness() businessModel.Business {
	return businessModel.Business{
		ID:                      businessID,
		Name:                    "Studio",
		Slug:                    "studio",
		Timezone:                "UTC",
		Plan:                    plan.TierFreemium,
		PlanStatus:              plan.StatusActive,
		CancellationNoticeHours: 24,
	}
}

func haircut() catalogModel.Service {
	return catalogModel.Service{ID: serviceID, BusinessID: businessID, Name: "Haircut", DurationMinutes: 45, Price: 30, Active: true}
}

func stylist() professionalModel.Professional {
	return professionalModel.Professional{ID: professionalID, BusinessID: businessID, Name: "Ana", Active: true}
}

func createRequest(date, clock string) dto.CreateAppointmentRequest {
	return dto.CreateAppointmentRequest{
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           date,
		Time:           clock,
		Customer:       &dto.CustomerInput{Name: "Maria", Phone: "+55 (11) 9999-0000", Email: "maria@example.com"},
	}
}

// expectBookable wires the lookups that run before the transaction.
func (f fixture) expectBookable(booked int) {
	f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(booked, nil)
	f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut(), nil)
	f.professionalRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stylist(), nil)
	f.professionalRepo.EXPECT().OffersService(gomock.Any(), professionalID, serviceID).Return(true, nil)
}

// expectLockedQuota wires the monthly count repeated under the business lock.
func (f fixture) expectLockedQuota(booked int) {
	f.businessRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
	f.repo.EXPECT().CountTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booked, nil)
}

func (f fixture) expectLockedSlot(busy []availability.Interval) {
	f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
	f.customerRepo.EXPECT().UpsertByPhoneTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, c customerModel.Customer) (customerModel.Customer, error) {
			return c, nil
		})
	f.expectLockedQuota(0)
	f.professionalRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), professionalModel.FieldID).
		Return(professionalModel.Professional{ID: professionalID}, nil)
	f.repo.EXPECT().BusyIntervalsTx(gomock.Any(), gomock.Any(), professionalID, gomock.Any()).Return(busy, nil)
}

func bookRequest(date, clock string) dto.BookAppointmentRequest {
	req := createRequest(date, clock)

	return dto.BookAppointmentRequest{
		ServiceID:      req.ServiceID,
		ProfessionalID: req.ProfessionalID,
		Date:           req.Date,
		Time:           req.Time,
		Customer:       *req.Customer,
	}
}

func TestAppointmentService_Create(t *testing.T) {
	f := newFixture(t)

	f.expectBookable(3)
	f.expectLockedSlot(nil)

	var inserted model.Appointment

	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, appointment model.Appointment) error {
			inserted = appointment

			return nil
		})

	res, err := f.svc.Create(tenantContext(), createRequest(bookingDay, "14:30"))
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, inserted.Status)
	assert.Equal(t, time.Date(2030, 6, 10, 14, 30, 0, 0, time.UTC), inserted.StartTime)
	assert.Equal(t, time.Date(2030, 6, 10, 15, 15, 0, 0, time.UTC), inserted.EndTime)
	assert.Equal(t, "owner-1", inserted.CreatedBy)

	assert.Equal(t, inserted.ID, res.ID)
	assert.Equal(t, bookingDay, res.Date)
	assert.Equal(t, "14:30", res.Time)
	assert.Equal(t, "2030-06-10T14:30:00Z", res.StartTime)
	assert.Equal(t, "2030-06-10T15:15:00Z", res.EndTime)
	assert.Equal(t, "Maria", res.Customer.Name)
	assert.Equal(t, "+551199990000", res.Customer.Phone)
	assert.Equal(t, "Haircut", res.Service.Name)
	assert.Equal(t, "Ana", res.Professional.Name)
}

func TestAppointmentService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateAppointmentRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   error
	}{
		{
			name: "date in the past",
			req:  createRequest("2020-01-06", "10:00"),
			setupMock: func(f fixture) {
				f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown business",
			req:  createRequest(bookingDay, "10:00"),
			setupMock: func(f fixture) {
				f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(businessModel.Business{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "inactive service",
			req:  createRequest(bookingDay, "10:00"),
			setupMock: func(f fixture) {
				inactive := haircut()
				inactive.Active = false

				f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "professional does not offer the service",
			req:  createRequest(bookingDay, "10:00"),
			setupMock: func(f fixture) {
				f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut(), nil)
				f.professionalRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stylist(), nil)
				f.professionalRepo.EXPECT().OffersService(gomock.Any(), professionalID, serviceID).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "unknown customer id",
			req: dto.CreateAppointmentRequest{
				ServiceID:      serviceID,
				ProfessionalID: professionalID,
				Date:           bookingDay,
				Time:           "10:00",
				CustomerID:     "missing",
			},
			setupMock: func(f fixture) {
				f.expectBookable(0)
				f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.customerRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(customerModel.Customer{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "overlapping booking",
			req:  createRequest(bookingDay, "10:30"),
			setupMock: func(f fixture) {
				f.expectBookable(0)
				f.expectLockedSlot([]availability.Interval{{
					ID:    "other",
					Start: time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC),
					End:   time.Date(2030, 6, 10, 11, 0, 0, 0, time.UTC),
				}})
			},
			wantErr: failure.SlotUnavailableError,
		},
		{
			name: "booking from the previous evening runs past midnight",
			req:  createRequest(bookingDay, "00:00"),
			setupMock: func(f fixture) {
				f.expectBookable(0)
				f.expectLockedSlot([]availability.Interval{{
					ID:    "late",
					Start: time.Date(2030, 6, 9, 23, 30, 0, 0, time.UTC),
					End:   time.Date(2030, 6, 10, 0, 30, 0, 0, time.UTC),
				}})
			},
			wantErr: failure.SlotUnavailableError,
		},
		{
			name: "last monthly appointment taken concurrently",
			req:  createRequest(bookingDay, "10:00"),
			setupMock: func(f fixture) {
				f.expectBookable(19)
				f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.customerRepo.EXPECT().UpsertByPhoneTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, c customerModel.Customer) (customerModel.Customer, error) {
						return c, nil
					})
				f.expectLockedQuota(20)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "exclusion constraint backstop",
			req:  createRequest(bookingDay, "11:00"),
			setupMock: func(f fixture) {
				f.expectBookable(0)
				f.expectLockedSlot(nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeExclusionViolation, Constraint: model.ConstraintNoOverlap})
			},
			wantErr: failure.SlotUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.Create(tenantContext(), tt.req)
			require.Error(t, err)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAppointmentService_Create_MonthlyLimit(t *testing.T) {
	f := newFixture(t)

	june := mustDay(t, bookingDay)
	july := mustDay(t, "2030-07-01")

	f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), model.MonthlyUsageFilter(businessID, june)).Return(20, nil)
	f.repo.EXPECT().Count(gomock.Any(), model.MonthlyUsageFilter(businessID, july)).Return(0, nil)

	_, err := f.svc.Create(tenantContext(), createRequest(bookingDay, "10:00"))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	assert.Equal(t, map[string]any{"resource": "appointments", "plan": "FREEMIUM", "limit": 20}, failure.GetDetails(err))

	f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut(), nil)
	f.professionalRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stylist(), nil)
	f.professionalRepo.EXPECT().OffersService(gomock.Any(), professionalID, serviceID).Return(true, nil)
	f.expectLockedSlot(nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err = f.svc.Create(tenantContext(), createRequest("2030-07-01", "10:00"))
	assert.NoError(t, err)
}

func TestAppointmentService_Book(t *testing.T) {
	tests := []struct {
		name      string
		clock     string
		setupMock func(f fixture)
		wantErr   error
	}{
		{
			name:  "inside working hours",
			clock: "09:00",
			setupMock: func(f fixture) {
				f.expectLockedSlot(nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "ends after closing",
			clock:     "17:30",
			setupMock: func(fixture) {},
			wantErr:   failure.SlotUnavailableError,
		},
		{
			name:      "before opening",
			clock:     "07:00",
			setupMock: func(fixture) {},
			wantErr:   failure.SlotUnavailableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.expectBookable(0)
			tt.setupMock(f)

			_, err := f.svc.Book(context.Background(), businessID, bookRequest(bookingDay, tt.clock))
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAppointmentService_Slots(t *testing.T) {
	f := newFixture(t)

	f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
	f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut(), nil)
	f.professionalRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stylist(), nil)
	f.professionalRepo.EXPECT().OffersService(gomock.Any(), professionalID, serviceID).Return(true, nil)
	f.repo.EXPECT().BusyIntervals(gomock.Any(), professionalID, availability.Interval{
		Start: time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 6, 11, 0, 0, 0, 0, time.UTC),
	}).Return([]availability.Interval{{
		Start: time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2030, 6, 10, 11, 0, 0, 0, time.UTC),
	}}, nil)

	seq, err := f.svc.Slots(context.Background(), dto.SlotQuery{
		BusinessID:     businessID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           bookingDay,
	})
	require.NoError(t, err)

	slots := slices.Collect(seq)
	require.NotEmpty(t, slots)

	assert.Equal(t, availability.Slot{Time: "09:00", Available: true}, slots[0])
	assert.Equal(t, availability.Slot{Time: "09:30", Available: false}, slots[1])
	assert.Equal(t, availability.Slot{Time: "10:30", Available: false}, slots[3])
	assert.Equal(t, availability.Slot{Time: "11:00", Available: true}, slots[4])
	assert.Equal(t, "17:00", slots[len(slots)-1].Time)

	assert.Equal(t, slots, slices.Collect(seq))
}

func TestAppointmentService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   model.Status
		next      model.Status
		wantEvent outboxModel.EventType
		wantCode  int
	}{
		{name: "confirm queues confirmation", current: model.StatusPending, next: model.StatusConfirmed, wantEvent: outboxModel.EventAppointmentConfirmed},
		{name: "cancel queues cancellation", current: model.StatusConfirmed, next: model.StatusCancelled, wantEvent: outboxModel.EventAppointmentCancelled},
		{name: "complete queues nothing", current: model.StatusConfirmed, next: model.StatusCompleted},
		{name: "terminal status cannot move", current: model.StatusCompleted, next: model.StatusConfirmed, wantCode: http.StatusBadRequest},
		{name: "pending cannot complete", current: model.StatusPending, next: model.StatusCompleted, wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(model.Appointment{ID: appointmentID, BusinessID: businessID, Status: tt.current}, nil)

			if tt.wantCode == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.next, fields[model.FieldStatus])

						return nil
					})
			}

			if tt.wantEvent != "" {
				f.outboxRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, event outboxModel.Event) error {
						assert.Equal(t, tt.wantEvent, event.EventType)
						assert.Equal(t, appointmentID, event.AggregateID)

						payload, err := event.AppointmentPayload()
						require.NoError(t, err)
						assert.Equal(t, event.ID, payload.EventID)

						return nil
					})
			}

			err := f.svc.UpdateStatus(tenantContext(), dto.UpdateStatusRequest{Status: tt.next}, appointmentID)
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAppointmentService_Reschedule(t *testing.T) {
	current := model.Appointment{
		ID:             appointmentID,
		BusinessID:     businessID,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		Date:           time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
		StartTime:      time.Date(2030, 6, 10, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2030, 6, 10, 10, 45, 0, 0, time.UTC),
		Status:         model.StatusConfirmed,
	}

	t.Run("moves within its own slot", func(t *testing.T) {
		f := newFixture(t)
		clock := "10:15"

		f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut(), nil)
		f.professionalRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stylist(), nil)
		f.professionalRepo.EXPECT().OffersService(gomock.Any(), professionalID, serviceID).Return(true, nil)
		f.professionalRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), professionalModel.FieldID).
			Return(stylist(), nil)
		f.repo.EXPECT().BusyIntervalsTx(gomock.Any(), gomock.Any(), professionalID, gomock.Any()).
			Return([]availability.Interval{current.Interval()}, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, time.Date(2030, 6, 10, 10, 15, 0, 0, time.UTC), fields[model.FieldStartTime])
				assert.Equal(t, time.Date(2030, 6, 10, 11, 0, 0, 0, time.UTC), fields[model.FieldEndTime])

				return nil
			})
		f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).
			Return(model.AppointmentDetail{Appointment: current, BusinessTimezone: "UTC"}, nil)

		res, err := f.svc.Reschedule(tenantContext(), dto.RescheduleAppointmentRequest{Time: &clock}, appointmentID)
		require.NoError(t, err)
		assert.Equal(t, appointmentID, res.ID)
	})

	t.Run("terminal appointment is rejected", func(t *testing.T) {
		f := newFixture(t)
		clock := "12:00"
		done := current
		done.Status = model.StatusCancelled

		f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(done, nil)

		_, err := f.svc.Reschedule(tenantContext(), dto.RescheduleAppointmentRequest{Time: &clock}, appointmentID)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("conflicts with another booking", func(t *testing.T) {
		f := newFixture(t)
		clock := "11:00"

		f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
		f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)
		f.catalogRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(haircut(), nil)
		f.professionalRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stylist(), nil)
		f.professionalRepo.EXPECT().OffersService(gomock.Any(), professionalID, serviceID).Return(true, nil)
		f.professionalRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), professionalModel.FieldID).
			Return(stylist(), nil)
		f.repo.EXPECT().BusyIntervalsTx(gomock.Any(), gomock.Any(), professionalID, gomock.Any()).
			Return([]availability.Interval{current.Interval(), {
				ID:    "other",
				Start: time.Date(2030, 6, 10, 11, 30, 0, 0, time.UTC),
				End:   time.Date(2030, 6, 10, 12, 0, 0, 0, time.UTC),
			}}, nil)

		_, err := f.svc.Reschedule(tenantContext(), dto.RescheduleAppointmentRequest{Time: &clock}, appointmentID)
		assert.ErrorIs(t, err, failure.SlotUnavailableError)
	})
}

func TestAppointmentService_PublicCancel(t *testing.T) {
	soon := timezone.Now().Add(2 * time.Hour)
	later := timezone.Now().Add(72 * time.Hour)

	tests := []struct {
		name      string
		start     time.Time
		phone     string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:  "cancels with matching phone",
			start: later,
			phone: "+55 11 99990000",
			setupMock: func(f fixture) {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.outboxRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:      "phone mismatch looks missing",
			start:     later,
			phone:     "+1 555 0100",
			setupMock: func(fixture) {},
			wantCode:  http.StatusNotFound,
		},
		{
			name:      "inside the notice window",
			start:     soon,
			phone:     "+5511 9999 0000",
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.businessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(freemiumBusiness(), nil)
			f.repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Appointment{
				ID:         appointmentID,
				BusinessID: businessID,
				CustomerID: "cust-1",
				StartTime:  tt.start,
				Status:     model.StatusConfirmed,
			}, nil)
			f.customerRepo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(customerModel.Customer{ID: "cust-1", Phone: "+551199990000"}, nil)
			tt.setupMock(f)

			err := f.svc.PublicCancel(context.Background(), businessID, appointmentID, dto.PublicCancelRequest{Phone: tt.phone})
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAppointmentService_Get(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(model.AppointmentDetail{}, nil)

	_, err := f.svc.Get(tenantContext(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestAppointmentService_Delete(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, f.svc.Delete(tenantContext(), appointmentID))

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	assert.Equal(t, http.StatusNotFound, failure.GetCode(f.svc.Delete(tenantContext(), appointmentID)))
}
