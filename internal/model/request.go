package model

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Password  *string `json:"password,omitempty"`
}

type PostCreateRequest struct {
	Title           string  `json:"title"`
	Excerpt         string  `json:"excerpt"`
	Content         string  `json:"content"`
	Author          string  `json:"author"`
	Date            string  `json:"date"`
	Category        string  `json:"category"`
	ImageURL        *string `json:"image_url,omitempty"`
	ReadTime        string  `json:"read_time"`
	IsBreaking      bool    `json:"is_breaking"`
	IsEditorsChoice bool    `json:"is_editors_choice"`
	IsTopNews       bool    `json:"is_top_news"`
	IsTrending      bool    `json:"is_trending"`
}

type PostUpdateRequest struct {
	Title           *string `json:"title,omitempty"`
	Excerpt         *string `json:"excerpt,omitempty"`
	Content         *string `json:"content,omitempty"`
	Author          *string `json:"author,omitempty"`
	Date            *string `json:"date,omitempty"`
	Category        *string `json:"category,omitempty"`
	ImageURL        *string `json:"image_url,omitempty"`
	ReadTime        *string `json:"read_time,omitempty"`
	IsBreaking      *bool   `json:"is_breaking,omitempty"`
	IsEditorsChoice *bool   `json:"is_editors_choice,omitempty"`
	IsTopNews       *bool   `json:"is_top_news,omitempty"`
	IsTrending      *bool   `json:"is_trending,omitempty"`
}

type RegionCreateRequest struct {
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

type RegionUpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Image *string `json:"image,omitempty"`
}

type SubZoneCreateRequest struct {
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}
