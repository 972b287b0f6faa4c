package dto

import (
	"go-destinations-api/modules/auth/entity"
)

// GoogleUserInfo is the profile payload returned by Google's userinfo
// endpoint.
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AuthURLResponse carries the Google consent screen URL.
type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Name       *string `json:"name"`
	PictureURL *string `json:"picture_url"`
}

// LoginResponse is returned after a successful Google callback.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// AuthStatusResponse reports whether the caller's token is valid and who
// they are.
type AuthStatusResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		Email:      u.Email,
		Name:       u.Name,
		PictureURL: u.PictureURL,
	}
}
