package dto

import "time"

// RegisterRequest alta de un cliente desde la tienda.
type RegisterRequest struct {
	Email    string `json:"email" valid:"required,email"`
	Password string `json:"password" valid:"required,minstringlength(8)"`
	Name     string `json:"name" valid:"optional,maxstringlength(200)"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest credenciales para login y para /auth/token.
type LoginRequest struct {
	Email    string `json:"email" valid:"required,email"`
	Password string `json:"password" valid:"required"`
}

// TokenResponse par de tokens emitido por /auth/token y /auth/token/refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"` // segundos
}

// LoginResponse tokens + usuario autenticado.
type LoginResponse struct {
	TokenResponse
	User UserResponse `json:"user"`
}

// RefreshRequest body de /auth/token/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" valid:"required"`
}
