package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.venues (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     external_id     UUID NOT NULL UNIQUE,
//     venue_name      TEXT NOT NULL,
//     latitude        DOUBLE PRECISION NOT NULL,
//     longitude       DOUBLE PRECISION NOT NULL,
//     price_tier      SMALLINT NOT NULL DEFAULT 2,          -- 1..4
//     rating          NUMERIC NOT NULL DEFAULT 0,           -- 0..5
//     quality_score   NUMERIC NOT NULL DEFAULT 0,           -- 0..10, 0 = unset
//     ambiance_score  NUMERIC NOT NULL DEFAULT 0,           -- 0..10
//     review_count    INT NOT NULL DEFAULT 0,
//     attributes      JSONB NOT NULL DEFAULT '{}',          -- boolean attribute map
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Venue struct {
	ID            uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID    string            `gorm:"column:external_id;type:uuid" json:"external_id"`
	VenueName     string            `gorm:"column:venue_name;type:text" json:"venue_name"`
	Latitude      float64           `gorm:"column:latitude" json:"latitude"`
	Longitude     float64           `gorm:"column:longitude" json:"longitude"`
	PriceTier     int               `gorm:"column:price_tier;default:2" json:"price_tier"`
	Rating        float64           `gorm:"column:rating;type:numeric" json:"rating"`
	QualityScore  float64           `gorm:"column:quality_score;type:numeric" json:"quality_score"`
	AmbianceScore float64           `gorm:"column:ambiance_score;type:numeric" json:"ambiance_score"`
	ReviewCount   int               `gorm:"column:review_count" json:"review_count"`
	Attributes    datatypes.JSONMap `gorm:"column:attributes;type:jsonb" json:"attributes"`
	CreatedAt     time.Time         `gorm:"column:created_at" json:"created_at"`

	Tags    []VenueTag    `gorm:"foreignKey:VenueID" json:"tags,omitempty"`
	Reviews []VenueReview `gorm:"foreignKey:VenueID" json:"reviews,omitempty"`
}

func (Venue) TableName() string {
	return "venues"
}

// CREATE TABLE public.venue_tags (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     venue_id   BIGINT NOT NULL REFERENCES venues(id),
//     tag_name   TEXT NOT NULL,                             -- e.g. "italian"
//     category   TEXT NOT NULL                              -- e.g. "cuisine", "dietary"
// );

type VenueTag struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	VenueID  uint64 `gorm:"column:venue_id;index" json:"venue_id"`
	TagName  string `gorm:"column:tag_name;type:text" json:"tag_name"`
	Category string `gorm:"column:category;type:text" json:"category"`
}

func (VenueTag) TableName() string {
	return "venue_tags"
}

// CREATE TABLE public.venue_reviews (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     venue_id   BIGINT NOT NULL REFERENCES venues(id),
//     body       TEXT NOT NULL,
//     tag        TEXT NOT NULL DEFAULT '',                  -- "ambiance", "food", ...
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

type VenueReview struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	VenueID   uint64    `gorm:"column:venue_id;index" json:"venue_id"`
	Body      string    `gorm:"column:body;type:text" json:"body"`
	Tag       string    `gorm:"column:tag;type:text" json:"tag"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (VenueReview) TableName() string {
	return "venue_reviews"
}

// BoolAttr reads a boolean attribute from the venue's attribute map. The
// second return reports whether the attribute is known at all; an absent key
// is "unknown", not "false".
func (v *Venue) BoolAttr(key string) (value bool, known bool) {
	if v.Attributes == nil {
		return false, false
	}
	raw, ok := v.Attributes[key]
	if !ok {
		return false, false
	}
	b, ok := raw.(bool)
	if !ok {
		return false, false
	}
	return b, true
}
