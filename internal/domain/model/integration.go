package model

import (
	"encoding/json"
	"time"
)

// Integration is a per-service configuration record for external systems
// (shopify, ebay, ai, chat). Config is an opaque JSON document interpreted by
// the owning adapter.
type Integration struct {
	Service   string
	Config    json.RawMessage
	IsActive  bool
	UpdatedAt time.Time
}
