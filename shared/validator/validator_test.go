package validator_test

import (
	"net/http"
	"salon/shared/failure"
	"salon/shared/validator"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingItem struct {
	ArtistID    int64   `json:"artist_id"    validate:"required,gt=0"`
	BookingDate string  `json:"booking_date" validate:"required,datetime=2006-01-02"`
	Price       float64 `json:"price"        validate:"gte=0"`
	Email       string  `json:"email"        validate:"omitempty,email"`
	Source      string  `json:"source"       validate:"omitempty,oneof=walk_in online"`
}

func TestValidateStruct(t *testing.T) {
	valid := bookingItem{ArtistID: 3, BookingDate: "2024-05-01", Price: 150000}

	tests := []struct {
		name    string
		mutate  func(*bookingItem)
		wantMsg string
	}{
		{"valid", func(*bookingItem) {}, ""},
		{"missing artist", func(b *bookingItem) { b.ArtistID = 0 }, "artist_id is required"},
		{"bad date", func(b *bookingItem) { b.BookingDate = "01/05/2024" }, "booking_date must match the format 2006-01-02"},
		{"negative price", func(b *bookingItem) { b.Price = -1 }, "price must be greater than or equal to 0"},
		{"bad email", func(b *bookingItem) { b.Email = "nope" }, "email must be a valid email address"},
		{"bad source", func(b *bookingItem) { b.Source = "fax" }, "source must be one of walk_in online"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid
			tt.mutate(&item)

			err := validator.ValidateStruct(&item)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestValidate(t *testing.T) {
	var item bookingItem

	err := validator.Validate(strings.NewReader(`{"artist_id":3,"booking_date":"2024-05-01","price":1}`), &item)
	require.NoError(t, err)
	assert.Equal(t, int64(3), item.ArtistID)

	err = validator.Validate(strings.NewReader(`{"artist_id":`), &item)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "failed to decode request body")

	err = validator.Validate(strings.NewReader(`{"booking_date":"2024-05-01"}`), &bookingItem{})
	assert.EqualError(t, err, "artist_id is required")
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("123456", "numeric,len=6"))
	assert.EqualError(t, validator.ValidateVar("12a456", "numeric"), "value must contain digits only")
	assert.EqualError(t, validator.ValidateVar("", "required"), "value is required")
}

type profileImage struct {
	Image string `json:"profile_image" validate:"omitempty,image"`
}

func TestImageValidation(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		wantErr bool
	}{
		{name: "empty is skipped", image: ""},
		{name: "https url", image: "https://cdn.example.com/avatars/u1.png"},
		{name: "png data uri", image: "data:image/png;base64,SGVsbG8="},
		{name: "webp data uri", image: "data:image/webp;base64,SGVsbG8="},
		{name: "text data uri", image: "data:text/plain;base64,SGVsbG8=", wantErr: true},
		{name: "ftp url", image: "ftp://cdn.example.com/a.png", wantErr: true},
		{name: "not a url", image: "avatar.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&profileImage{Image: tt.image})
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, strings.HasPrefix(err.Error(), "profile_image must be"))
		})
	}
}
