package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// GuestOwnerPrefix marks owner IDs that belong to guest (local store) mode.
const GuestOwnerPrefix = "guest:"
