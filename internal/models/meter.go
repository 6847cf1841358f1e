package models

import "time"

type MeterStatus string

const (
	MeterActive      MeterStatus = "active"
	MeterInactive    MeterStatus = "inactive"
	MeterMaintenance MeterStatus = "maintenance"
)

func (s MeterStatus) Valid() bool {
	switch s {
	case MeterActive, MeterInactive, MeterMaintenance:
		return true
	}
	return false
}

// MeterNumberPrefix starts every generated meter number; the rest is unix milliseconds.
const MeterNumberPrefix = "WM"

type WaterMeter struct {
	ID               int64       `db:"meter_id" json:"meter_id"`
	UserID           int64       `db:"user_id" json:"user_id"`
	MeterNumber      string      `db:"meter_number" json:"meter_number"`
	Location         string      `db:"location" json:"location"`
	InstallationDate Date        `db:"installation_date" json:"installation_date"`
	Status           MeterStatus `db:"status" json:"status"`
	CreatedAt        time.Time   `db:"created_at" json:"created_at"`
}
