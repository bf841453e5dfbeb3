// File: internal/domain/pagecontext.go
package domain

import "time"

// PageContext is the route-derived display bundle shown to orient the user.
// It is recomputed from the current path and never persisted.
type PageContext struct {
	PageName      string
	Description   string
	Suggestions   []string
	RecentActions []string
}

// Event is a single entry from the platform's recent-activity feed.
type Event struct {
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
