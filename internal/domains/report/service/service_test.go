package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"salon/config"
	otelMocks "salon/infras/otel/mocks"
	s3Mocks "salon/infras/s3/mocks"
	bookingMocks "salon/internal/domains/booking/mocks"
	"salon/internal/domains/booking/model"
	reportMocks "salon/internal/domains/report/mocks"
	reportDto "salon/internal/domains/report/model/dto"
	"salon/internal/domains/report/service"
	statusModel "salon/internal/domains/status/model"
	"salon/internal/pipeline"
	"salon/shared"
	cacheMocks "salon/shared/cache/mocks"
	"salon/shared/constant"
	gModel "salon/shared/model"
)

type fixture struct {
	svc      service.Report
	repo     *bookingMocks.MockBooking
	artists  *reportMocks.MockArtists
	statuses *reportMocks.MockStatuses
	s3       *s3Mocks.MockS3
	cache    *cacheMocks.MockRedisCache
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.External.S3.ReportDirectory = "reports"

	f := fixture{
		repo:     bookingMocks.NewMockBooking(ctrl),
		artists:  reportMocks.NewMockArtists(ctrl),
		statuses: reportMocks.NewMockStatuses(ctrl),
		s3:       s3Mocks.NewMockS3(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	f.svc = service.New(f.repo, f.artists, f.statuses, f.s3, f.cache, cfg, otelMocks.NewOtel())

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.statuses.EXPECT().Normalizer(gomock.Any()).Return(statusModel.NewNormalizer(nil), nil).AnyTimes()

	return f
}

func row(id, bookingNo int64, status string, artistID *int64, price string, qty int) model.Booking {
	return model.Booking{
		ID:          id,
		BookingNo:   bookingNo,
		Name:        "Customer",
		Status:      status,
		ArtistID:    artistID,
		BookingDate: "2024-05-10",
		Price:       decimal.RequireFromString(price),
		Qty:         qty,
		Metadata:    gModel.Metadata{CreatedAt: time.Date(2024, 5, int(id), 8, 0, 0, 0, time.UTC)},
	}
}

func ptr(v int64) *int64 {
	return &v
}

func fixtureRows() []model.Booking {
	return []model.Booking{
		row(1, 100, "Done", ptr(7), "150000.50", 2),
		row(2, 100, "done", ptr(8), "99000", 1),
		row(3, 101, "Pending", nil, "50000", 1),
		row(4, 102, "completed", ptr(7), "1000", 3),
		row(5, 103, "Waiting Review", nil, "20000", 1),
	}
}

func TestReportService_Summary(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(fixtureRows(), nil)
	f.artists.EXPECT().
		FetchArtists(gomock.Any(), []int64{7, 8}).
		Return([]pipeline.Artist{{ID: 7, FirstName: "Ayu"}, {ID: 8, FirstName: "Bunga"}}, nil)

	res, err := f.svc.Summary(context.Background(), pipeline.DefaultFilterState())

	require.NoError(t, err)
	assert.Equal(t, 5, res.TotalBookings)
	assert.Equal(t, 4, res.TotalOrders)
	assert.Equal(t, "402001", res.Revenue.String())

	counts := map[string]int{}
	for _, status := range res.ByStatus {
		counts[status.Status] = status.Count
	}

	assert.Equal(t, 3, counts[string(statusModel.CodeDone)])
	assert.Equal(t, 1, counts[string(statusModel.CodePending)])
	assert.Equal(t, 0, counts[string(statusModel.CodeCancelled)])
	assert.Equal(t, 1, counts["waiting review"])

	require.Len(t, res.ByArtist, 3)
	assert.Equal(t, "Ayu", res.ByArtist[0].Name)
	assert.Equal(t, 2, res.ByArtist[0].Done)
	assert.Equal(t, "303001", res.ByArtist[0].Revenue.String())
	assert.Equal(t, "Bunga", res.ByArtist[1].Name)
	assert.Equal(t, pipeline.NotAssigned, res.ByArtist[2].Name)
	assert.Equal(t, 2, res.ByArtist[2].Bookings)
	assert.True(t, res.ByArtist[2].Revenue.IsZero())
}

func TestReportService_SummaryAppliesFilters(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(fixtureRows(), nil)
	f.artists.EXPECT().FetchArtists(gomock.Any(), gomock.Any()).Return(nil, errors.New("artist service down"))

	state := pipeline.DefaultFilterState()
	state.Artist = "7"

	res, err := f.svc.Summary(context.Background(), state)

	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalBookings)
	assert.Equal(t, "303001", res.Revenue.String())
	assert.Equal(t, "7", res.Filters.Artist)
}

func TestReportService_Export(t *testing.T) {
	t.Run("uploads workbook", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(fixtureRows(), nil)
		f.artists.EXPECT().FetchArtists(gomock.Any(), gomock.Any()).Return([]pipeline.Artist{{ID: 7, FirstName: "Ayu"}}, nil)
		f.s3.EXPECT().
			Upload(gomock.Any(), gomock.Any(), constant.ContentTypeXLSX, gomock.Any()).
			DoAndReturn(func(_ context.Context, key, _ string, data []byte) (string, error) {
				assert.Contains(t, key, "reports/bookings_")

				book, err := excelize.OpenReader(bytes.NewReader(data))
				require.NoError(t, err)

				defer book.Close()

				rows, err := book.GetRows("Bookings")
				require.NoError(t, err)
				require.Len(t, rows, 3)
				assert.Equal(t, "Booking No", rows[0][0])
				assert.Equal(t, "100", rows[1][0])
				assert.Equal(t, "Ayu", rows[1][11])
				assert.Equal(t, "Done", rows[1][12])
				assert.Equal(t, "Done", rows[2][12])

				summary, err := book.GetCellValue("Summary", "B1")
				require.NoError(t, err)
				assert.Equal(t, "2", summary)

				return "https://cdn.example.com/salon/" + key, nil
			})

		state := pipeline.DefaultFilterState()
		state.Artist = "7"
		state.SortDirection = pipeline.SortAsc

		res, err := f.svc.Export(context.Background(), shared.Actor{UserID: "admin"}, state)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Rows)
		assert.Contains(t, res.URL, res.FileName)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(fixtureRows(), nil)
		f.artists.EXPECT().FetchArtists(gomock.Any(), gomock.Any()).Return(nil, nil)
		f.s3.EXPECT().
			Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("bucket unavailable"))

		_, err := f.svc.Export(context.Background(), shared.Actor{UserID: "admin"}, pipeline.DefaultFilterState())

		assert.Error(t, err)
	})
}

func TestReportService_SummaryCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(
		bookingMocks.NewMockBooking(ctrl),
		reportMocks.NewMockArtists(ctrl),
		reportMocks.NewMockStatuses(ctrl),
		s3Mocks.NewMockS3(ctrl),
		cache,
		&config.Config{},
		otelMocks.NewOtel(),
	)

	cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, value any) error {
			assert.Contains(t, key, "report:summary:")

			*value.(*reportDto.SummaryResponse) = reportDto.SummaryResponse{TotalBookings: 9}

			return nil
		})

	res, err := svc.Summary(context.Background(), pipeline.DefaultFilterState())

	require.NoError(t, err)
	assert.Equal(t, 9, res.TotalBookings)
}

func TestReportService_Evict(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Clear(gomock.Any(), "report:summary*").Return(nil)

	f.svc.Evict(context.Background())
}
