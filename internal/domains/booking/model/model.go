package model

import (
	"salon/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	SequenceBookingNo = "booking_no_seq"

	FieldID          = "id"
	FieldBookingNo   = "booking_no"
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhoneNo     = "phone_no"
	FieldAddress     = "address"
	FieldBookingDate = "booking_date"
	FieldBookingTime = "booking_time"
	FieldStatus      = "status"
	FieldArtistID    = "artist_id"
	FieldPrice       = "price"
	FieldQty         = "qty"
	FieldPurpose     = "purpose"
	FieldServiceName = "service_name"
	FieldSubService  = "sub_service"
	FieldProductName = "product_name"
	FieldMemberID    = "member_id"
	FieldCreatedAt   = "created_at"
)

// Booking is one line item of a customer order; line items of one order share BookingNo.
// BookingDate is kept as text because imported rows are not guaranteed to hold a valid date.
type Booking struct {
	ID          int64           `db:"id"           insert:"false"`
	BookingNo   int64           `db:"booking_no"`
	Name        string          `db:"name"`
	Email       string          `db:"email"`
	PhoneNo     string          `db:"phone_no"`
	Address     string          `db:"address"`
	BookingDate string          `db:"booking_date"`
	BookingTime string          `db:"booking_time"`
	Status      string          `db:"status"`
	ArtistID    *int64          `db:"artist_id"`
	Price       decimal.Decimal `db:"price"`
	Qty         int             `db:"qty"`
	Purpose     string          `db:"purpose"`
	ServiceName string          `db:"service_name"`
	SubService  string          `db:"sub_service"`
	ProductName string          `db:"product_name"`
	MemberID    *string         `db:"member_id"`
	model.Metadata
}

// Total is the line amount, price times quantity.
func (b Booking) Total() decimal.Decimal {
	return b.Price.Mul(decimal.NewFromInt(int64(b.Qty)))
}
