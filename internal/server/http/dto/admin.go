package dto

import (
	"encoding/json"
	"time"
)

// LoginRequest is the admin console login payload.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// IntegrationResponse is a stored service configuration with secrets masked.
type IntegrationResponse struct {
	Service   string          `json:"service"`
	Config    json.RawMessage `json:"config"`
	IsActive  bool            `json:"is_active"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UpdateIntegrationRequest stores service configuration.
type UpdateIntegrationRequest struct {
	Config   json.RawMessage `json:"config"`
	IsActive bool            `json:"is_active"`
}

// ChatSettings drives the storefront chat widget.
type ChatSettings struct {
	PropertyID string `json:"propertyId"`
	WidgetID   string `json:"widgetId"`
	Enabled    bool   `json:"enabled"`
}

// StatsResponse summarizes catalog counts for the admin dashboard.
type StatsResponse struct {
	Users    int64 `json:"users"`
	Products int64 `json:"products"`
	Orders   int64 `json:"orders"`
}

// SystemInfoResponse reports runtime facts for the admin console.
type SystemInfoResponse struct {
	Runtime string `json:"runtime"`
	Env     string `json:"env"`
	DB      string `json:"db"`
}
