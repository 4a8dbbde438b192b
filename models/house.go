package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// House is a whole unit rented by the day or month.
type House struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Type string `bson:"type" json:"type"`
}

// DefaultHouses are the units seeded on startup.
var DefaultHouses = []House{
	{ID: "white-house-ground", Name: "White House - Ground Floor", Type: "house"},
	{ID: "white-house-first", Name: "White House - First Floor", Type: "house"},
	{ID: "white-house-second", Name: "White House - Second Floor", Type: "house"},
	{ID: "guest-house", Name: "Guest House", Type: "house"},
}

type ExtraFee struct {
	Description string          `bson:"description" json:"description"`
	Amount      decimal.Decimal `bson:"amount" json:"amount"`
	Timestamp   time.Time       `bson:"timestamp" json:"timestamp"`
}

type Extension struct {
	AdditionalDays int             `bson:"additionalDays" json:"additionalDays"`
	RentForDays    decimal.Decimal `bson:"rentForDays" json:"rentForDays"`
	Timestamp      time.Time       `bson:"timestamp" json:"timestamp"`
}

type HousePayment struct {
	Amount    decimal.Decimal `bson:"amount" json:"amount"`
	Mode      PaymentMode     `bson:"mode" json:"mode"`
	Timestamp time.Time       `bson:"timestamp" json:"timestamp"`
}

// HouseBooking is an occupancy of a house. Rent includes every extension and fee,
// and PendingAmount is Rent minus InitialPayment minus the payments received.
type HouseBooking struct {
	ID             string          `bson:"id" json:"id"`
	HouseID        string          `bson:"houseId" json:"houseId"`
	HouseName      string          `bson:"houseName" json:"houseName"`
	GuestName      string          `bson:"guestName" json:"guestName"`
	PhoneNumber    string          `bson:"phoneNumber" json:"phoneNumber"`
	IDNumber       string          `bson:"idNumber" json:"idNumber"`
	NumberOfGuests int             `bson:"numberOfGuests" json:"numberOfGuests"`
	DaysOfStay     int             `bson:"daysOfStay" json:"daysOfStay"`
	Rent           decimal.Decimal `bson:"rent" json:"rent"`
	InitialPayment decimal.Decimal `bson:"initialPayment" json:"initialPayment"`
	PaymentMode    PaymentMode     `bson:"paymentMode" json:"paymentMode"`
	CheckedInAt    time.Time       `bson:"checkedInAt" json:"checkedInAt"`
	CheckOutDate   time.Time       `bson:"checkOutDate" json:"checkOutDate"`
	IsCheckedOut   bool            `bson:"isCheckedOut" json:"isCheckedOut"`
	CheckedOutAt   *time.Time      `bson:"checkedOutAt,omitempty" json:"checkedOutAt,omitempty"`
	PendingAmount  decimal.Decimal `bson:"pendingAmount" json:"pendingAmount"`
	ExtraFees      []ExtraFee      `bson:"extraFees" json:"extraFees"`
	Extensions     []Extension     `bson:"extensions" json:"extensions"`
	Payments       []HousePayment  `bson:"payments" json:"payments"`
	Version        int             `bson:"version" json:"version"`
}

type HouseCheckInRequest struct {
	GuestName      string          `json:"guestName"`
	PhoneNumber    string          `json:"phoneNumber"`
	IDNumber       string          `json:"idNumber"`
	NumberOfGuests int             `json:"numberOfGuests"`
	StayType       string          `json:"stayType"`
	DaysOfStay     int             `json:"daysOfStay"`
	Rent           decimal.Decimal `json:"rent"`
	InitialPayment decimal.Decimal `json:"initialPayment"`
	PaymentMode    PaymentMode     `json:"paymentMode"`
}

type ExtendStayRequest struct {
	AdditionalDays int             `json:"additionalDays" binding:"required,min=1"`
	RentForDays    decimal.Decimal `json:"rentForDays"`
}

type ExtraFeeRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// HouseBoardEntry pairs a house with its open booking, if any.
type HouseBoardEntry struct {
	House   House         `json:"house"`
	Status  string        `json:"status"`
	Booking *HouseBooking `json:"booking,omitempty"`
}
