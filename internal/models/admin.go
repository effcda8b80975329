package models

import "time"

// Admin is a directory administrator account
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminSession is the identity carried by a verified session token
type AdminSession struct {
	AdminID   int64  `json:"admin_id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionResponse describes the current admin session
type SessionResponse struct {
	Session *AdminSession `json:"session"`
}
