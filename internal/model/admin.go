package model

import "time"

type Admin struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// AdminProfile is the admin as exposed over the API, without the digest.
type AdminProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (a Admin) Profile() AdminProfile {
	return AdminProfile{
		ID:        a.ID,
		Username:  a.Username,
		FullName:  a.FullName,
		Email:     a.Email,
		AvatarURL: a.AvatarURL,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

// AuthClaims is what a validated bearer token asserts about its holder.
type AuthClaims struct {
	AdminID  string
	Username string
	Role     string
	TokenID  string
}

type LoginResult struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	Admin       AdminProfile `json:"admin"`
}
