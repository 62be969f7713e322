package models

import "time"

// Roles.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
	RoleAgent = "AGENT"
)

// User is an account that belongs to exactly one tenant.
type User struct {
	ID           string    `bson:"id" json:"id"`
	TenantID     string    `bson:"tenantId" json:"tenantId"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	FCMToken     string    `bson:"fcmToken,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest is the payload of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
	TenantID string `json:"tenantId" binding:"required"`
}

// LoginRequest is the payload of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ServiceTokenRequest is the payload of POST /auth/service-token.
type ServiceTokenRequest struct {
	APIKey   string `json:"apiKey" binding:"required"`
	TenantID string `json:"tenantId" binding:"required"`
}

// AuthResult is returned after a successful login.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Principal is the authenticated caller resolved from a bearer token.
type Principal struct {
	UserID   string
	TenantID string
	Email    string
	Role     string
}

// FCMTokenRequest is the payload of PUT /api/users/fcm-token.
type FCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
