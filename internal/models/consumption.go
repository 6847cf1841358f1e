package models

import "time"

type ConsumptionRecord struct {
	ID               int64     `db:"record_id" json:"record_id"`
	UserID           int64     `db:"user_id" json:"user_id"`
	WaterMeterNumber string    `db:"water_meter_number" json:"water_meter_number"`
	ConsumptionDate  time.Time `db:"consumption_date" json:"consumption_date"`
	Consumption      float64   `db:"consumption" json:"consumption"`
}
