package dto

import "time"

type SignupDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"` //密碼明文
}

// TokenInfo 表示令牌資訊
type TokenInfo struct {
	Value     string `json:"value"`
	ExpiresIn int    `json:"expires_in"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	AccessToken TokenInfo `json:"access_token"`
	User        UserDTO   `json:"user"`
}
