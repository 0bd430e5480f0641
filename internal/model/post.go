package model

import "time"

type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"`
	Author          string    `json:"author"`
	Date            string    `json:"date"`
	Category        string    `json:"category"`
	ImageURL        *string   `json:"image_url,omitempty"`
	ReadTime        string    `json:"read_time"`
	Views           int       `json:"views"`
	IsBreaking      bool      `json:"is_breaking"`
	IsEditorsChoice bool      `json:"is_editors_choice"`
	IsTopNews       bool      `json:"is_top_news"`
	IsTrending      bool      `json:"is_trending"`
	AdminID         *string   `json:"admin_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PostFilter narrows a listing. Nil flag pointers mean "no constraint",
// distinct from filtering on false.
type PostFilter struct {
	Category        string
	IsBreaking      *bool
	IsEditorsChoice *bool
	IsTopNews       *bool
	IsTrending      *bool
	Search          string
	Limit           int
	Offset          int
}

type AnalyticsSummary struct {
	TotalPosts      int            `json:"total_posts"`
	TotalViews      int            `json:"total_views"`
	TotalRegions    int            `json:"total_regions"`
	TotalAdmins     int            `json:"total_admins"`
	PostsByCategory map[string]int `json:"posts_by_category"`
}
