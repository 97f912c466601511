// Package notification carries the short user-facing messages (toasts) the
// dashboard shows when a search falls back, fails, or is slow.
package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind identifies what triggered a notification.
type Kind string

const (
	KindLocationNotFound Kind = "location-not-found"
	KindRetrievalFailed  Kind = "retrieval-failed"
	KindInvalidSearch    Kind = "invalid-search"
	KindStillLoading     Kind = "still-loading"
)

// Variant is the display style of a notification.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Notification is a single fire-and-forget message.
type Notification struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Variant     Variant   `json:"variant"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// Query is the user's original, un-normalized search text when relevant.
	Query     string     `json:"query,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

func newNotification(kind Kind, variant Variant, title, description string) Notification {
	return Notification{
		ID:          uuid.New().String(),
		Kind:        kind,
		Variant:     variant,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
}

// LocationNotFound reports that query had no data and fallback is shown instead.
func LocationNotFound(query, fallback string) Notification {
	n := newNotification(KindLocationNotFound, VariantDestructive, "Location not found",
		fmt.Sprintf("Weather data for %s is not available. Showing data for %s instead.", query, fallback))
	n.Query = query
	return n
}

// RetrievalFailed is the generic failure message; it carries no error detail.
func RetrievalFailed() Notification {
	return newNotification(KindRetrievalFailed, VariantDestructive, "Error",
		"Failed to fetch weather data. Please try again later.")
}

// InvalidSearch reports a query rejected before resolution.
func InvalidSearch(query string, minLength int) Notification {
	n := newNotification(KindInvalidSearch, VariantDestructive, "Please enter a valid location",
		fmt.Sprintf("Location should be at least %d characters long", minLength))
	n.Query = query
	return n
}

// StillLoading tells the user a resolution is taking longer than expected.
func StillLoading() Notification {
	return newNotification(KindStillLoading, VariantDefault, "Loading weather data",
		"This might take a moment...")
}

// Expired reports whether the notification has an expiry at or before now.
func (n Notification) Expired(now time.Time) bool {
	return n.ExpiresAt != nil && !now.Before(*n.ExpiresAt)
}
