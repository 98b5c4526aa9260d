package models

import (
	"strings"

	"gorm.io/gorm"
)

// Region groups locations for filtering and labelling only.
type Region string

const (
	RegionNorth Region = "NORTH"
	RegionSouth Region = "SOUTH"
)

func (r Region) Valid() bool {
	switch r {
	case RegionNorth, RegionSouth:
		return true
	}
	return false
}

// Label is the Korean name shown on driver cards.
func (r Region) Label() string {
	switch r {
	case RegionNorth:
		return "북부"
	case RegionSouth:
		return "남부"
	}
	return string(r)
}

func ParseRegion(s string) (Region, bool) {
	r := Region(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Location is a delivery site. Deleting one is a soft delete so that
// route history keeps resolving it.
type Location struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null;index"`
	Address    string `json:"address" gorm:"not null"`
	Region     Region `json:"region" gorm:"type:varchar(8);not null;default:'NORTH'"`
	AccessInfo string `json:"access_info"`

	// WKB encoded point, nil when the admin never pinned the site.
	Geometry []byte `json:"-" gorm:"type:bytea"`
}
