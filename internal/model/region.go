package model

import "time"

type Region struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Image     *string   `json:"image,omitempty"`
	SubZones  []SubZone `json:"sub_zones"`
	CreatedAt time.Time `json:"created_at"`
}

type SubZone struct {
	ID        string    `json:"id"`
	RegionID  string    `json:"region_id"`
	Name      string    `json:"name"`
	Image     *string   `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
