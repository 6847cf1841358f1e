package models

import "time"

type SourceType string

const (
	SourceGroundwater SourceType = "Groundwater"
	SourceMunicipal   SourceType = "Municipal"
)

func (t SourceType) Valid() bool {
	return t == SourceGroundwater || t == SourceMunicipal
}

type WaterSource struct {
	ID        int64      `db:"source_id" json:"source_id"`
	UserID    int64      `db:"user_id" json:"user_id"`
	Name      string     `db:"name" json:"name"`
	Type      SourceType `db:"type" json:"type"`
	Capacity  float64    `db:"capacity" json:"capacity"`
	Location  string     `db:"location" json:"location"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}
