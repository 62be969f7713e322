package models

import "time"

// TenantConfig holds per-tenant branding, payment and chat agent settings.
type TenantConfig struct {
	TenantID         string    `bson:"tenantId" json:"tenantId"`
	PublicName       string    `bson:"publicName,omitempty" json:"publicName,omitempty"`
	ThemeColor       string    `bson:"themeColor,omitempty" json:"themeColor,omitempty"`
	LogoURL          string    `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	PixKey           string    `bson:"pixKey,omitempty" json:"pixKey,omitempty"`
	AgentName        string    `bson:"agentName,omitempty" json:"agentName,omitempty"`
	AgentGreeting    string    `bson:"agentGreeting,omitempty" json:"agentGreeting,omitempty"`
	AgentPersonality string    `bson:"agentPersonality,omitempty" json:"agentPersonality,omitempty"`
	AgentTone        string    `bson:"agentTone,omitempty" json:"agentTone,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TenantConfigUpdate is the payload of PUT /api/config.
type TenantConfigUpdate struct {
	PublicName *string `json:"publicName"`
	ThemeColor *string `json:"themeColor"`
	LogoURL    *string `json:"logoUrl"`
	PixKey     *string `json:"pixKey"`
}

// AgentConfigUpdate is the payload of PUT /api/config/agent.
type AgentConfigUpdate struct {
	AgentName        *string `json:"agentName"`
	AgentGreeting    *string `json:"agentGreeting"`
	AgentPersonality *string `json:"agentPersonality"`
	AgentTone        *string `json:"agentTone" binding:"omitempty,oneof=friendly formal casual"`
}

// PublicPaymentConfig is the subset of tenant config exposed without authentication.
type PublicPaymentConfig struct {
	PixKey     string `json:"pixKey"`
	LogoURL    string `json:"logoUrl"`
	PublicName string `json:"publicName"`
	ThemeColor string `json:"themeColor"`
}

// AgentConfig is the resolved persona used by the chat agent.
type AgentConfig struct {
	AgentName        string `json:"agentName"`
	AgentGreeting    string `json:"agentGreeting"`
	AgentPersonality string `json:"agentPersonality"`
	AgentTone        string `json:"agentTone"`
	PublicName       string `json:"publicName,omitempty"`
}
