package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Room endpoints
	ListRooms        gin.HandlerFunc
	CreateRoom       gin.HandlerFunc
	UpdateRoomStatus gin.HandlerFunc
	AvailableRooms   gin.HandlerFunc
	RoomCheckIn      gin.HandlerFunc

	// Stay endpoints
	ListStays    gin.HandlerFunc
	StayPayment  gin.HandlerFunc
	StayPayments gin.HandlerFunc
	StayCheckOut gin.HandlerFunc

	// Advance booking endpoints
	ListBookings    gin.HandlerFunc
	GetBooking      gin.HandlerFunc
	CreateBooking   gin.HandlerFunc
	CancelBooking   gin.HandlerFunc
	CompleteBooking gin.HandlerFunc

	// House endpoints
	HouseBoard    gin.HandlerFunc
	HouseCheckIn  gin.HandlerFunc
	HouseExtend   gin.HandlerFunc
	HouseExtraFee gin.HandlerFunc
	HousePayment  gin.HandlerFunc
	HouseCheckOut gin.HandlerFunc

	// Ledger endpoints
	ListPayments   gin.HandlerFunc
	ExportPayments gin.HandlerFunc
	Reconcile      gin.HandlerFunc

	Dashboard gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(rh *RoomHandler, bh *BookingHandler, hh *HouseHandler, ph *PaymentHandler, dh *DashboardHandler) *HandlerBundle {
	return &HandlerBundle{
		ListRooms:        rh.ListRoomsHandler,
		CreateRoom:       rh.CreateRoomHandler,
		UpdateRoomStatus: rh.UpdateRoomStatusHandler,
		AvailableRooms:   rh.AvailableRoomsHandler,
		RoomCheckIn:      rh.CheckInHandler,

		ListStays:    rh.ListStaysHandler,
		StayPayment:  rh.StayPaymentHandler,
		StayPayments: rh.StayPaymentsHandler,
		StayCheckOut: rh.CheckOutHandler,

		ListBookings:    bh.ListBookingsHandler,
		GetBooking:      bh.GetBookingHandler,
		CreateBooking:   bh.CreateBookingHandler,
		CancelBooking:   bh.CancelBookingHandler,
		CompleteBooking: bh.CompleteBookingHandler,

		HouseBoard:    hh.BoardHandler,
		HouseCheckIn:  hh.CheckInHandler,
		HouseExtend:   hh.ExtendHandler,
		HouseExtraFee: hh.ExtraFeeHandler,
		HousePayment:  hh.PaymentHandler,
		HouseCheckOut: hh.CheckOutHandler,

		ListPayments:   ph.ListPaymentsHandler,
		ExportPayments: ph.ExportPaymentsHandler,
		Reconcile:      ph.ReconcileHandler,

		Dashboard: dh.SummaryHandler,
	}
}
