package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// VehicleStatus represents the sale status of a listing.
type VehicleStatus string

const (
	VehicleStatusForSale VehicleStatus = "for-sale"
	VehicleStatusPending VehicleStatus = "pending"
	VehicleStatusSold    VehicleStatus = "sold"
)

// TitleStatus is the normalized title brand reported by history providers.
type TitleStatus string

const (
	TitleStatusClean   TitleStatus = "clean"
	TitleStatusBranded TitleStatus = "branded"
	TitleStatusLemon   TitleStatus = "lemon"
	TitleStatusFlood   TitleStatus = "flood"
	TitleStatusSalvage TitleStatus = "salvage"
	TitleStatusUnknown TitleStatus = "unknown"
)

// Vehicle represents one physical car for sale.
type Vehicle struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug        string  `gorm:"uniqueIndex;size:200;not null" json:"slug"`
	VIN         *string `gorm:"column:vin;uniqueIndex;size:17" json:"vin,omitempty"`
	StockNumber string  `gorm:"index;size:50" json:"stock_number"`

	Title         string `gorm:"size:200;not null" json:"title"`
	Description   string `json:"description"`
	Year          int    `gorm:"not null;index" json:"year"`
	Make          string `gorm:"size:50;not null;index" json:"make"`
	Model         string `gorm:"size:50;not null;index" json:"model"`
	Mileage       string `gorm:"size:50" json:"mileage"`
	ExteriorColor string `gorm:"size:50" json:"exterior_color"`
	InteriorColor string `gorm:"size:50" json:"interior_color"`
	Engine        string `gorm:"size:100" json:"engine"`
	Transmission  string `gorm:"size:50" json:"transmission"`
	DriveType     string `gorm:"size:50" json:"drive_type"`

	Price  int64         `gorm:"not null;default:0" json:"price"`
	Status VehicleStatus `gorm:"size:16;not null;default:'for-sale';index" json:"status"`

	// Images is ordered; the first entry is the cover photo.
	Images      StringList `gorm:"type:jsonb" json:"images"`
	KeyFeatures StringList `gorm:"type:jsonb" json:"key_features"`

	// Marketing banners. Independent flags, not mutually exclusive.
	BannerNew       bool `gorm:"not null;default:false;index" json:"banner_new"`
	BannerReduced   bool `gorm:"not null;default:false" json:"banner_reduced"`
	BannerGreatDeal bool `gorm:"not null;default:false" json:"banner_great_deal"`
	BannerSold      bool `gorm:"not null;default:false" json:"banner_sold"`

	// History report fields, populated by the vehicle history service.
	CarfaxEmbedCode     *string     `json:"carfax_embed_code,omitempty"`
	AutoCheckURL        *string     `gorm:"column:autocheck_url;size:500" json:"autocheck_url,omitempty"`
	VehicleHistoryScore *int        `json:"vehicle_history_score,omitempty"`
	AccidentHistory     *string     `json:"accident_history,omitempty"`
	PreviousOwners      *int        `json:"previous_owners,omitempty"`
	ServiceRecords      *string     `json:"service_records,omitempty"`
	TitleStatus         TitleStatus `gorm:"size:16;not null;default:'unknown'" json:"title_status"`
	LastHistoryUpdate   *time.Time  `json:"last_history_update,omitempty"`

	MetaTitle       *string `gorm:"size:200" json:"meta_title,omitempty"`
	MetaDescription *string `gorm:"size:500" json:"meta_description,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Vehicle) TableName() string {
	return "vehicles"
}

// StringList is an ordered list of strings stored as a JSONB column.
type StringList []string

// Value implements driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner interface
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		*l = nil
		return nil
	}
}
