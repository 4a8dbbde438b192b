package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	// BookingPending only appears on imported legacy documents.
	BookingPending   BookingStatus = "pending"
	BookingActive    BookingStatus = "active"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// RoomLineItem is one room reserved by an advance booking.
type RoomLineItem struct {
	RoomID     string          `bson:"roomId" json:"roomId" binding:"required"`
	RoomNumber int             `bson:"roomNumber" json:"roomNumber"`
	Price      decimal.Decimal `bson:"price" json:"price"`
	Persons    int             `bson:"persons" json:"persons"`
}

// AdvanceBooking reserves rooms for a future date against an advance payment.
type AdvanceBooking struct {
	ID            string          `bson:"id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	Mobile        string          `bson:"mobile" json:"mobile"`
	Aadhar        string          `bson:"aadhar" json:"aadhar"`
	DateOfBooking string          `bson:"date_of_booking" json:"date_of_booking"`
	RoomType      string          `bson:"room_type" json:"room_type"`
	NumberOfRooms int             `bson:"number_of_rooms" json:"number_of_rooms"`
	AdvanceAmount decimal.Decimal `bson:"advance_amount" json:"advance_amount"`
	PaymentMode   PaymentMode     `bson:"payment_mode" json:"payment_mode"`
	Rooms         []RoomLineItem  `bson:"rooms" json:"rooms"`
	Status        BookingStatus   `bson:"status" json:"status"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	CancelledAt   *time.Time      `bson:"cancelled_at" json:"cancelled_at"`
	CompletedAt   *time.Time      `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	RefundAmount  decimal.Decimal `bson:"refund_amount" json:"refund_amount"`
	Version       int             `bson:"version" json:"version"`
}

// RoomNumbers returns the booked room numbers in booking order.
func (b *AdvanceBooking) RoomNumbers() []int {
	out := make([]int, 0, len(b.Rooms))
	for _, r := range b.Rooms {
		out = append(out, r.RoomNumber)
	}
	return out
}

// AdvanceBookingDetails are the guest and payment fields of a new booking.
type AdvanceBookingDetails struct {
	Name          string          `json:"name"`
	Mobile        string          `json:"mobile"`
	Aadhar        string          `json:"aadhar"`
	DateOfBooking string          `json:"date_of_booking"`
	RoomType      string          `json:"room_type"`
	NumberOfRooms int             `json:"number_of_rooms"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
	PaymentMode   PaymentMode     `json:"payment_mode"`
}

type CreateAdvanceBookingRequest struct {
	AdvanceBookingDetails
	Rooms []RoomLineItem `json:"rooms" binding:"dive"`
}

type CancelBookingRequest struct {
	// Nil means refund the full advance.
	RefundAmount *decimal.Decimal `json:"refund_amount"`
}

// BookingPage is one page of the advance booking list.
type BookingPage struct {
	Bookings       []AdvanceBooking `json:"bookings"`
	Page           int              `json:"page"`
	PageSize       int              `json:"pageSize"`
	TotalPages     int              `json:"totalPages"`
	TotalMatches   int              `json:"totalMatches"`
	ActiveCount    int              `json:"activeCount"`
	CancelledCount int              `json:"cancelledCount"`
}
