package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomStatus is the housekeeping state of a room.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomCleaning    RoomStatus = "cleaning"
	RoomMaintenance RoomStatus = "maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

// Room is a bookable unit. RoomNumber is a display key and repeats across floors.
type Room struct {
	ID         string     `bson:"id" json:"id"`
	RoomNumber int        `bson:"roomNumber" json:"roomNumber"`
	Floor      string     `bson:"floor" json:"floor"`
	Type       string     `bson:"type" json:"type"`
	Status     RoomStatus `bson:"status" json:"status"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time  `bson:"updatedAt" json:"updatedAt"`
}

type CreateRoomRequest struct {
	RoomNumber int        `json:"roomNumber" binding:"required,min=1"`
	Floor      string     `json:"floor" binding:"required"`
	Type       string     `json:"type" binding:"required"`
	Status     RoomStatus `json:"status"`
}

type UpdateRoomStatusRequest struct {
	Status RoomStatus `json:"status" binding:"required"`
}

// Stay is a guest checked into a room.
type Stay struct {
	ID             string          `bson:"id" json:"id"`
	RoomID         string          `bson:"roomId" json:"roomId"`
	RoomNumber     int             `bson:"roomNumber" json:"roomNumber"`
	GuestName      string          `bson:"guestName" json:"guestName"`
	Mobile         string          `bson:"mobile" json:"mobile"`
	IDNumber       string          `bson:"idNumber" json:"idNumber"`
	NumberOfGuests int             `bson:"numberOfGuests" json:"numberOfGuests"`
	Rent           decimal.Decimal `bson:"rent" json:"rent"`
	InitialPayment decimal.Decimal `bson:"initialPayment" json:"initialPayment"`
	PaymentMode    PaymentMode     `bson:"paymentMode" json:"paymentMode"`
	PendingAmount  decimal.Decimal `bson:"pendingAmount" json:"pendingAmount"`
	CheckedInAt    time.Time       `bson:"checkedInAt" json:"checkedInAt"`
	CheckedOutAt   *time.Time      `bson:"checkedOutAt,omitempty" json:"checkedOutAt,omitempty"`
	IsCheckedOut   bool            `bson:"isCheckedOut" json:"isCheckedOut"`
	Version        int             `bson:"version" json:"version"`
}

type RoomCheckInRequest struct {
	GuestName      string          `json:"guestName" binding:"required"`
	Mobile         string          `json:"mobile" binding:"required"`
	IDNumber       string          `json:"idNumber" binding:"required"`
	NumberOfGuests int             `json:"numberOfGuests" binding:"required,min=1"`
	Rent           decimal.Decimal `json:"rent"`
	InitialPayment decimal.Decimal `json:"initialPayment"`
	PaymentMode    PaymentMode     `json:"paymentMode" binding:"required,paymode"`
}

// PaymentRequest records money received against an open stay or house booking.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Mode   PaymentMode     `json:"mode" binding:"required,paymode"`
}
