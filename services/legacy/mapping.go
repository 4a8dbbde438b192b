package legacy

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"innkeep/models"
	"innkeep/services/ledger"
	"innkeep/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocID derives a stable id from a legacy document path, so repeated imports address
// the same documents.
func DocID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("firestore:"+path)).String()
}

// parent holds the fields a sub-collection payment inherits from its stay or booking.
type parent struct {
	Path         string
	CustomerName string
	RoomNumber   string
}

// PaymentFromSub maps a payment stored under a check-in or house booking.
func PaymentFromSub(doc Document, p parent, now time.Time, loc *time.Location) models.LedgerEntry {
	t := entryType(str(doc.Data, "type"))
	e := models.LedgerEntry{
		ID:           DocID(doc.Path),
		Amount:       num(doc.Data, "amount"),
		Timestamp:    timeOr(doc.Data, "timestamp", now),
		CustomerName: p.CustomerName,
		RoomNumber:   p.RoomNumber,
		Type:         t,
		Mode:         mode(str(doc.Data, "mode", "paymentMode")),
		Description:  str(doc.Data, "description"),
		Ref:          models.LedgerRef{Kind: models.RefLegacy, ID: p.Path},
	}
	return finish(e, loc)
}

// PaymentFromTop maps a document of the top-level payments collection.
func PaymentFromTop(doc Document, now time.Time, loc *time.Location) models.LedgerEntry {
	e := models.LedgerEntry{
		ID:           DocID(doc.Path),
		Amount:       num(doc.Data, "amount"),
		Timestamp:    timeOr(doc.Data, "timestamp", now),
		CustomerName: str(doc.Data, "customerName", "customer_name", "guestName"),
		RoomNumber:   str(doc.Data, "roomNumber", "rooms"),
		Type:         entryType(str(doc.Data, "type")),
		Mode:         mode(str(doc.Data, "mode", "paymentMode")),
		Description:  str(doc.Data, "description", "note"),
		Status:       str(doc.Data, "paymentStatus"),
		Ref:          models.LedgerRef{Kind: models.RefLegacy, ID: doc.Path},
	}
	return finish(e, loc)
}

func finish(e models.LedgerEntry, loc *time.Location) models.LedgerEntry {
	if e.Type == models.EntryRefund && e.Amount.IsPositive() {
		e.Amount = e.Amount.Neg()
	}
	e = ledger.Normalize(e)
	e.Day = utils.Day(e.Timestamp, loc)
	e.Source = models.SourceLegacy
	return e
}

// RoomFromDoc maps a legacy room document.
func RoomFromDoc(doc Document, now time.Time) models.Room {
	status := models.RoomStatus(strings.ToLower(str(doc.Data, "status")))
	if !status.Valid() {
		status = models.RoomAvailable
	}
	created := timeOr(doc.Data, "createdAt", now)
	return models.Room{
		ID:         DocID(doc.Path),
		RoomNumber: intVal(doc.Data, "roomNumber"),
		Floor:      str(doc.Data, "floor"),
		Type:       str(doc.Data, "type"),
		Status:     status,
		CreatedAt:  created,
		UpdatedAt:  timeOr(doc.Data, "updatedAt", created),
	}
}

// BookingFromDoc maps a legacy advance booking. Room ids are translated with DocID so
// they point at imported rooms.
func BookingFromDoc(doc Document, now time.Time) models.AdvanceBooking {
	b := models.AdvanceBooking{
		ID:            DocID(doc.Path),
		Name:          str(doc.Data, "name"),
		Mobile:        str(doc.Data, "mobile"),
		Aadhar:        str(doc.Data, "aadhar"),
		DateOfBooking: str(doc.Data, "date_of_booking"),
		RoomType:      str(doc.Data, "room_type"),
		NumberOfRooms: intVal(doc.Data, "number_of_rooms"),
		AdvanceAmount: num(doc.Data, "advance_amount"),
		PaymentMode:   mode(str(doc.Data, "payment_mode")),
		Status:        models.BookingStatus(str(doc.Data, "status")),
		CreatedAt:     timeOr(doc.Data, "created_at", now),
		RefundAmount:  num(doc.Data, "refund_amount"),
		Rooms:         []models.RoomLineItem{},
		Version:       1,
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	if t, ok := timeVal(doc.Data, "cancelled_at"); ok {
		b.CancelledAt = &t
	}

	if raw, ok := doc.Data["rooms"].([]interface{}); ok {
		for _, item := range raw {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			line := models.RoomLineItem{
				RoomNumber: intVal(m, "roomNumber"),
				Price:      num(m, "price"),
				Persons:    intVal(m, "persons"),
			}
			if id := str(m, "roomId", "id"); id != "" {
				line.RoomID = DocID("rooms/" + id)
			}
			b.Rooms = append(b.Rooms, line)
		}
	}
	return b
}

// entryType maps a legacy type onto a known entry type; anything unknown is a payment.
func entryType(raw string) models.EntryType {
	switch t := models.EntryType(strings.ToLower(strings.TrimSpace(raw))); t {
	case models.EntryAdvance, models.EntryInitial, models.EntryExtension, models.EntryExtraFee,
		models.EntryRefund, models.EntryCheckIn, models.EntryPayment:
		return t
	default:
		return models.EntryPayment
	}
}

// mode maps a legacy payment mode. Missing or unknown modes are not counted as
// collected money.
func mode(raw string) models.PaymentMode {
	switch m := models.PaymentMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case models.ModeCash, models.ModeGPay:
		return m
	default:
		return models.ModeNone
	}
}

// str returns the first non-empty value among keys, rendered as a string.
func str(data map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := data[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case int64:
			return strconv.FormatInt(v, 10)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func num(data map[string]interface{}, key string) decimal.Decimal {
	switch v := data[key].(type) {
	case int64:
		return decimal.NewFromInt(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func intVal(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case int64:
		return int(v)
	case int:
		return v
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}

func timeVal(data map[string]interface{}, key string) (time.Time, bool) {
	switch v := data[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func timeOr(data map[string]interface{}, key string, fallback time.Time) time.Time {
	if t, ok := timeVal(data, key); ok {
		return t
	}
	return fallback
}

func describe(doc Document) string {
	return fmt.Sprintf("%s (%d fields)", doc.Path, len(doc.Data))
}
