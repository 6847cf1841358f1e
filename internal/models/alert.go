package models

import "time"

type AlertStatus string

const (
	AlertOpen     AlertStatus = "open"
	AlertResolved AlertStatus = "resolved"
)

func (s AlertStatus) Valid() bool {
	return s == AlertOpen || s == AlertResolved
}

// AlertTypeBilling is raised by the overdue billing sweep.
const AlertTypeBilling = "billing"

type Alert struct {
	ID         int64       `db:"alert_id" json:"alert_id"`
	UserID     int64       `db:"user_id" json:"user_id"`
	Type       string      `db:"type" json:"type"`
	Message    string      `db:"message" json:"message"`
	DateIssued time.Time   `db:"date_issued" json:"date_issued"`
	Status     AlertStatus `db:"status" json:"status"`
}
