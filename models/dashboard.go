package models

import "github.com/shopspring/decimal"

type RoomStats struct {
	Total       int `json:"total"`
	Occupied    int `json:"occupied"`
	Available   int `json:"available"`
	Cleaning    int `json:"cleaning"`
	Maintenance int `json:"maintenance"`
}

type PeriodTotals struct {
	Cash  decimal.Decimal `json:"cash"`
	GPay  decimal.Decimal `json:"gpay"`
	Total decimal.Decimal `json:"total"`
}

type DailyRevenue struct {
	Day   string          `json:"day"`
	Label string          `json:"label"`
	Cash  decimal.Decimal `json:"cash"`
	GPay  decimal.Decimal `json:"gpay"`
}

type DashboardSummary struct {
	Rooms RoomStats      `json:"rooms"`
	Today PeriodTotals   `json:"today"`
	Week  PeriodTotals   `json:"week"`
	Month PeriodTotals   `json:"month"`
	Daily []DailyRevenue `json:"daily"`
	AsOf  string         `json:"asOf"`
}
