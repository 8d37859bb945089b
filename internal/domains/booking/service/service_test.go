package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"salon/config"
	"salon/infras/kafka"
	otelMocks "salon/infras/otel/mocks"
	s3Mocks "salon/infras/s3/mocks"
	artistModel "salon/internal/domains/artist/model"
	artistDto "salon/internal/domains/artist/model/dto"
	bookingMocks "salon/internal/domains/booking/mocks"
	"salon/internal/domains/booking/model"
	"salon/internal/domains/booking/model/dto"
	"salon/internal/domains/booking/service"
	otpMocks "salon/internal/domains/otp/mocks"
	otpModel "salon/internal/domains/otp/model"
	reportMocks "salon/internal/domains/report/mocks"
	reportService "salon/internal/domains/report/service"
	statusModel "salon/internal/domains/status/model"
	"salon/internal/events"
	eventMocks "salon/internal/events/mocks"
	"salon/internal/pipeline"
	"salon/shared"
	"salon/shared/cache"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	gDto "salon/shared/dto"
	"salon/shared/failure"
	"salon/shared/metrics"
	gModel "salon/shared/model"
)

type fixture struct {
	svc      service.Booking
	repo     *bookingMocks.MockBooking
	artists  *bookingMocks.MockArtists
	statuses *bookingMocks.MockStatuses
	otp      *otpMocks.MockOTP
	events   *eventMocks.MockPublisher
	reports  *eventMocks.MockEvicter
	cache    *cacheMocks.MockRedisCache
	metrics  *metrics.Metrics
}

// bareFixture wires the service to mocks without any default expectations.
func bareFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		artists:  bookingMocks.NewMockArtists(ctrl),
		statuses: bookingMocks.NewMockStatuses(ctrl),
		otp:      otpMocks.NewMockOTP(ctrl),
		events:   eventMocks.NewMockPublisher(ctrl),
		reports:  eventMocks.NewMockEvicter(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
		metrics:  metrics.New(cfg),
	}

	f.svc = service.New(f.repo, f.artists, f.statuses, f.otp, f.events, f.reports, f.metrics, cfg, f.cache, otelMocks.NewOtel())

	return f
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	f := bareFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.reports.EXPECT().Evict(gomock.Any()).AnyTimes()
	f.statuses.EXPECT().Normalizer(gomock.Any()).Return(statusModel.NewNormalizer(nil), nil).AnyTimes()

	return f
}

func (f fixture) stored(booking model.Booking) {
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
}

func (f fixture) transitions(t *testing.T) int {
	t.Helper()

	count, err := testutil.GatherAndCount(f.metrics.Registry(), "salon_booking_status_transitions_total")
	require.NoError(t, err)

	return count
}

func ptr[T any](v T) *T {
	return &v
}

var (
	staff      = shared.Actor{UserID: "controller-id", Role: constant.RoleController}
	superAdmin = shared.Actor{UserID: "root-id", Role: constant.RoleSuperAdmin}
	member     = shared.Actor{UserID: "member-id", Role: constant.RoleMember}
	artistUser = shared.Actor{UserID: "artist-user", Role: constant.RoleArtist}
)

func booking(id int64, status string) model.Booking {
	return model.Booking{
		ID:          id,
		BookingNo:   1000 + id,
		Name:        "Citra",
		PhoneNo:     "0812",
		Status:      status,
		BookingDate: "2024-05-01",
		Price:       decimal.NewFromInt(100),
		Qty:         1,
		Metadata:    gModel.Metadata{CreatedAt: time.Date(2024, 4, int(id), 9, 0, 0, 0, time.UTC)},
	}
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		Name:        "Citra",
		Email:       "citra@example.com",
		PhoneNo:     "0812",
		Address:     "Jl. Mawar 1",
		BookingDate: "2024-05-01",
		BookingTime: "10:00",
		Items: []dto.BookingItemRequest{
			{ServiceName: "Makeup", Price: decimal.NewFromInt(250000), Qty: 1},
			{ServiceName: "Hair", Price: decimal.NewFromInt(100000), Qty: 2},
		},
	}

	t.Run("negative price", func(t *testing.T) {
		f := newFixture(t)

		bad := req
		bad.Items = []dto.BookingItemRequest{{ServiceName: "Makeup", Price: decimal.NewFromInt(-1), Qty: 1}}

		_, err := f.svc.Create(context.Background(), member, bad)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("order shares one number", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, items []model.Booking) (int64, error) {
				require.Len(t, items, 2)

				for _, item := range items {
					assert.Equal(t, string(statusModel.CodePending), item.Status)
					assert.Equal(t, "member-id", *item.MemberID)
				}

				return 1001, nil
			})
		f.events.EXPECT().
			BookingCreated(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, payload events.BookingCreated) {
				assert.Equal(t, int64(1001), payload.BookingNo)
				assert.Equal(t, 2, payload.Items)
			})

		res, err := f.svc.Create(context.Background(), member, req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(1001), res.BookingNo)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("database error"))

		_, err := f.svc.Create(context.Background(), staff, req)

		assert.Equal(t, 500, failure.GetCode(err))
	})
}

func TestBookingService_List(t *testing.T) {
	rows := []model.Booking{
		booking(1, "Pending"),
		booking(2, "confirmed"),
		booking(3, " pending "),
	}
	rows[1].ArtistID = ptr(int64(7))

	t.Run("staff list runs the pipeline and pages", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				assert.Empty(t, filter.Filters)
				assert.Equal(t, "bookings.id", params.SortBy, "rows load in a stable base order")
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return rows, nil
			})
		f.artists.EXPECT().
			FetchArtists(gomock.Any(), []int64{7}).
			Return([]pipeline.Artist{{ID: 7, FirstName: "Ayu", LastName: "Lestari"}}, nil)

		state := pipeline.DefaultFilterState()
		state.Status = "pending"

		res, err := f.svc.List(context.Background(), staff, gDto.QueryParams{Page: 1, Limit: 1}, state)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Equal(t, 2, res.TotalPage)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, int64(3), res.Bookings[0].ID)
		assert.Equal(t, "Pending", res.Bookings[0].StatusLabel)
		assert.Equal(t, pipeline.NotAssigned, res.Bookings[0].ArtistName)
		assert.Equal(t, []pipeline.ArtistOption{{Value: 7, Label: "Ayu Lestari"}}, res.ArtistOptions)
		assert.Equal(t, "pending", res.Filters.Status)
		assert.NotEmpty(t, res.StatusOptions)
	})

	t.Run("artist filter resolves names", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(rows, nil)
		f.artists.EXPECT().FetchArtists(gomock.Any(), gomock.Any()).Return([]pipeline.Artist{{ID: 7, FirstName: "Ayu"}}, nil)

		state := pipeline.DefaultFilterState()
		state.Artist = "7"

		res, err := f.svc.List(context.Background(), staff, gDto.QueryParams{}, state)

		require.NoError(t, err)
		require.Len(t, res.Bookings, 1)
		assert.Equal(t, "Ayu", res.Bookings[0].ArtistName)
	})

	t.Run("member sees own bookings", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "bookings.member_id")
				assert.Contains(t, args, model.FieldMemberID)

				return []model.Booking{}, nil
			})

		res, err := f.svc.List(context.Background(), member, gDto.QueryParams{}, pipeline.DefaultFilterState())

		require.NoError(t, err)
		assert.Empty(t, res.Bookings)
		assert.Empty(t, res.ArtistOptions)
	})

	t.Run("artist sees assigned bookings", func(t *testing.T) {
		f := newFixture(t)

		f.artists.EXPECT().GetByUserID(gomock.Any(), "artist-user").Return(artistModel.Artist{ID: 7, Active: true}, nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, int64(7), args[model.FieldArtistID])

				return []model.Booking{}, nil
			})

		_, err := f.svc.List(context.Background(), artistUser, gDto.QueryParams{}, pipeline.DefaultFilterState())

		assert.NoError(t, err)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.List(context.Background(), shared.Actor{}, gDto.QueryParams{}, pipeline.DefaultFilterState())

		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	t.Run("member reading another member's booking", func(t *testing.T) {
		f := newFixture(t)

		row := booking(1, "pending")
		row.MemberID = ptr("someone-else")
		f.stored(row)

		_, err := f.svc.Get(context.Background(), member, 1)

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.stored(model.Booking{})

		_, err := f.svc.Get(context.Background(), staff, 1)

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("assigned booking offers artist actions", func(t *testing.T) {
		f := newFixture(t)

		row := booking(1, "Beautician Assigned")
		row.ArtistID = ptr(int64(7))
		f.stored(row)
		f.artists.EXPECT().FetchArtists(gomock.Any(), []int64{7}).Return(nil, errors.New("artist service down"))

		res, err := f.svc.Get(context.Background(), staff, 1)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, []string{string(statusModel.ActionOnTheWay)}, res.Actions)
		assert.Equal(t, pipeline.NotAssigned, res.ArtistName)
		assert.Equal(t, statusModel.BadgePrimary, res.StatusBadge)
	})
}

func TestBookingService_GetOrder(t *testing.T) {
	f := newFixture(t)

	first := booking(1, "pending")
	second := booking(2, "pending")
	second.Price = decimal.RequireFromString("50.25")
	second.Qty = 2

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{first, second}, nil)

	res, err := f.svc.GetOrder(context.Background(), staff, 1001)

	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "200.5", res.Total.String())
}

func TestBookingService_ChangeStatus(t *testing.T) {
	tests := []struct {
		name      string
		actor     shared.Actor
		current   string
		req       dto.ChangeStatusRequest
		updated   bool
		callsRepo bool
		wantCode  int
	}{
		{name: "pending to confirmed", actor: staff, current: "Pending", req: dto.ChangeStatusRequest{Status: "Confirmed"}, updated: true, callsRepo: true},
		{name: "skipping steps", actor: staff, current: "pending", req: dto.ChangeStatusRequest{Status: "done"}, wantCode: 400},
		{name: "unknown target", actor: staff, current: "pending", req: dto.ChangeStatusRequest{Status: "teleported"}, wantCode: 400},
		{name: "out of terminal state", actor: staff, current: "cancelled", req: dto.ChangeStatusRequest{Status: "pending"}, wantCode: 400},
		{name: "stale write", actor: staff, current: "pending", req: dto.ChangeStatusRequest{Status: "confirmed"}, callsRepo: true, wantCode: 409},
		{name: "force by admin", actor: shared.Actor{UserID: "a", Role: constant.RoleAdmin}, current: "pending", req: dto.ChangeStatusRequest{Status: "done", Force: true}, wantCode: 403},
		{name: "force by superadmin", actor: superAdmin, current: "cancelled", req: dto.ChangeStatusRequest{Status: "done", Force: true}, updated: true, callsRepo: true},
		{name: "member", actor: member, current: "pending", req: dto.ChangeStatusRequest{Status: "confirmed"}, wantCode: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			if tt.actor.IsStaff() && (!tt.req.Force || tt.actor.IsSuperAdmin()) {
				f.stored(booking(5, tt.current))
			}

			if tt.callsRepo {
				f.repo.EXPECT().
					UpdateStatus(gomock.Any(), int64(5), tt.current, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
						assert.Equal(t, tt.actor.UserID, fields[constant.FieldModifiedBy])

						return tt.updated, nil
					})
			}

			if tt.updated {
				f.events.EXPECT().
					StatusChanged(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, payload events.StatusChanged) {
						assert.Equal(t, int64(5), payload.BookingID)
						assert.Equal(t, string(statusModel.NewNormalizer(nil).Normalize(tt.req.Status)), payload.To)
					})
			}

			err := f.svc.ChangeStatus(context.Background(), tt.actor, tt.req, 5)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, 0, f.transitions(t))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 1, f.transitions(t))
		})
	}
}

func TestBookingService_AssignArtist(t *testing.T) {
	t.Run("confirmed booking", func(t *testing.T) {
		f := newFixture(t)

		f.stored(booking(5, "confirmed"))
		f.artists.EXPECT().Get(gomock.Any(), int64(7)).Return(artistDto.ArtistResponse{ID: 7, Active: true}, nil)
		f.repo.EXPECT().
			UpdateStatus(gomock.Any(), int64(5), "confirmed", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, int64(7), fields[model.FieldArtistID])
				assert.Equal(t, string(statusModel.CodeBeauticianAssigned), fields[model.FieldStatus])

				return true, nil
			})
		f.events.EXPECT().
			StatusChanged(gomock.Any(), gomock.Any()).
			Do(func(_ context.Context, payload events.StatusChanged) {
				assert.Equal(t, int64(7), *payload.ArtistID)
			})

		err := f.svc.AssignArtist(context.Background(), staff, dto.AssignArtistRequest{ArtistID: 7}, 5)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("inactive artist", func(t *testing.T) {
		f := newFixture(t)

		f.stored(booking(5, "confirmed"))
		f.artists.EXPECT().Get(gomock.Any(), int64(7)).Return(artistDto.ArtistResponse{ID: 7}, nil)

		err := f.svc.AssignArtist(context.Background(), staff, dto.AssignArtistRequest{ArtistID: 7}, 5)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.stored(booking(5, "pending"))
		f.artists.EXPECT().Get(gomock.Any(), int64(7)).Return(artistDto.ArtistResponse{ID: 7, Active: true}, nil)

		err := f.svc.AssignArtist(context.Background(), staff, dto.AssignArtistRequest{ArtistID: 7}, 5)

		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	own := func(status string) model.Booking {
		row := booking(5, status)
		row.MemberID = ptr("member-id")

		return row
	}

	t.Run("member cancels own pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.stored(own("pending"))
		f.repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), "pending", gomock.Any()).Return(true, nil)
		f.events.EXPECT().StatusChanged(gomock.Any(), gomock.Any())

		err := f.svc.Cancel(context.Background(), member, 5)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("member after assignment", func(t *testing.T) {
		f := newFixture(t)

		f.stored(own("beautician_assigned"))

		err := f.svc.Cancel(context.Background(), member, 5)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("staff after assignment", func(t *testing.T) {
		f := newFixture(t)

		f.stored(own("beautician_assigned"))
		f.repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), "beautician_assigned", gomock.Any()).Return(true, nil)
		f.events.EXPECT().StatusChanged(gomock.Any(), gomock.Any())

		err := f.svc.Cancel(context.Background(), staff, 5)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		f := newFixture(t)

		row := booking(5, "pending")
		row.MemberID = ptr("other")
		f.stored(row)

		err := f.svc.Cancel(context.Background(), member, 5)

		assert.Equal(t, 403, failure.GetCode(err))
	})
}

func TestBookingService_ArtistActions(t *testing.T) {
	assigned := func(status string, artistID int64) model.Booking {
		row := booking(5, status)
		row.ArtistID = ptr(artistID)

		return row
	}

	setup := func(f fixture, row model.Booking) {
		f.artists.EXPECT().GetByUserID(gomock.Any(), "artist-user").Return(artistModel.Artist{ID: 7, Active: true}, nil)
		f.stored(row)
	}

	t.Run("on the way needs no otp", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("Beautician Assigned", 7))
		f.repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), "Beautician Assigned", gomock.Any()).Return(true, nil)
		f.events.EXPECT().StatusChanged(gomock.Any(), gomock.Any())

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "on_the_way", dto.ActionRequest{})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("start verifies the customer's otp", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("on_the_way", 7))
		f.otp.EXPECT().Verify(gomock.Any(), otpModel.Subject{BookingID: 5, Action: "start"}, "123456").Return(nil)
		f.repo.EXPECT().
			UpdateStatus(gomock.Any(), int64(5), "on_the_way", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, string(statusModel.CodeServiceStarted), fields[model.FieldStatus])

				return true, nil
			})
		f.events.EXPECT().StatusChanged(gomock.Any(), gomock.Any())
		f.otp.EXPECT().Consume(gomock.Any(), otpModel.Subject{BookingID: 5, Action: "start"})

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "Start", dto.ActionRequest{OTP: "123456"})

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("lost status race keeps the code", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("on_the_way", 7))
		f.otp.EXPECT().Verify(gomock.Any(), otpModel.Subject{BookingID: 5, Action: "start"}, "123456").Return(nil)
		f.repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), "on_the_way", gomock.Any()).Return(false, nil)

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "start", dto.ActionRequest{OTP: "123456"})

		assert.Equal(t, 409, failure.GetCode(err))
	})

	t.Run("wrong otp keeps the status", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("service_started", 7))
		f.otp.EXPECT().Verify(gomock.Any(), gomock.Any(), "000000").Return(failure.BadRequestFromString("invalid otp"))

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "complete", dto.ActionRequest{OTP: "000000"})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("missing otp", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("on_the_way", 7))

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "start", dto.ActionRequest{})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("action not offered for status", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("beautician_assigned", 7))

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "complete", dto.ActionRequest{OTP: "123456"})

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("booking of another artist", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("on_the_way", 8))

		err := f.svc.PerformAction(context.Background(), artistUser, 5, "start", dto.ActionRequest{OTP: "123456"})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("staff cannot act as artist", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.PerformAction(context.Background(), staff, 5, "start", dto.ActionRequest{OTP: "123456"})

		assert.Equal(t, 403, failure.GetCode(err))
	})

	t.Run("request otp sends to the customer", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("on_the_way", 7))

		expires := time.Now().Add(5 * time.Minute)
		f.otp.EXPECT().
			Request(gomock.Any(), otpModel.Subject{BookingID: 5, Action: "start"}, otpModel.Recipient{Name: "Citra", PhoneNo: "0812"}).
			Return(otpModel.Challenge{ExpiresAt: expires, Length: 6, MaxAttempts: 5}, nil)

		res, err := f.svc.RequestActionOTP(context.Background(), artistUser, 5, "start")

		require.NoError(t, err)
		assert.Equal(t, "start", res.Action)
		assert.Equal(t, 6, res.Length)
	})

	t.Run("request otp for on the way", func(t *testing.T) {
		f := newFixture(t)

		setup(f, assigned("beautician_assigned", 7))

		_, err := f.svc.RequestActionOTP(context.Background(), artistUser, 5, "on_the_way")

		assert.Equal(t, 400, failure.GetCode(err))
	})
}

func TestBookingService_UpdateAndDelete(t *testing.T) {
	t.Run("empty update", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Update(context.Background(), staff, dto.UpdateBookingRequest{}, 5)

		assert.Equal(t, 400, failure.GetCode(err))
	})

	t.Run("update", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "10:30", fields[model.FieldBookingTime])

				return nil
			})

		err := f.svc.Update(context.Background(), staff, dto.UpdateBookingRequest{BookingTime: "10:30"}, 5)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("delete missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), 5)

		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestBookingService_TransitionsIgnoreCachedStatus(t *testing.T) {
	f := bareFixture(t)

	f.statuses.EXPECT().Normalizer(gomock.Any()).Return(statusModel.NewNormalizer(nil), nil).AnyTimes()
	f.reports.EXPECT().Evict(gomock.Any()).AnyTimes()

	// a stale cached copy must never be consulted for a status change
	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	f.stored(booking(5, "confirmed"))
	f.repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), "confirmed", gomock.Any()).Return(true, nil)
	f.events.EXPECT().StatusChanged(gomock.Any(), gomock.Any())

	gomock.InOrder(
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:5").Return(nil),
		f.cache.EXPECT().Clear(gomock.Any(), "booking:rows*").Return(nil),
	)

	err := f.svc.Cancel(context.Background(), staff, 5)

	require.NoError(t, err)
}

func TestBookingService_WritesEvictReportSummaryWithoutKafka(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Enable = false

	redisCache := cache.NewRedisCache(client, ot)
	repo := bookingMocks.NewMockBooking(ctrl)
	statuses := bookingMocks.NewMockStatuses(ctrl)
	statuses.EXPECT().Normalizer(gomock.Any()).Return(statusModel.NewNormalizer(nil), nil).AnyTimes()

	reports := reportService.New(repo, reportMocks.NewMockArtists(ctrl), reportMocks.NewMockStatuses(ctrl), s3Mocks.NewMockS3(ctrl), redisCache, cfg, ot)
	publisher := events.New(cfg, kafka.New(cfg, ot))

	svc := service.New(repo, bookingMocks.NewMockArtists(ctrl), statuses, otpMocks.NewMockOTP(ctrl), publisher, reports, metrics.New(cfg), cfg, redisCache, ot)

	summaryKey := shared.BuildCacheKey("report:summary", `{"status":"all"}`)
	require.NoError(t, redisCache.Save(context.Background(), summaryKey, map[string]int{"pending": 1}, 3600))

	repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(5, "pending"), nil)
	repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), "pending", gomock.Any()).Return(true, nil)

	err = svc.ChangeStatus(context.Background(), staff, dto.ChangeStatusRequest{Status: "confirmed"}, 5)

	require.NoError(t, err)
	assert.False(t, mr.Exists(summaryKey), "the summary is gone as soon as the write returns")
}
