// Package store provides the event persistence port and its adapters.
package store

import (
	"context"

	"github.com/avelisk/remindd/pkg/models"
)

// EventStore is the persistence port for the events collection. Documents
// are immutable once created; there is no update or delete.
type EventStore interface {
	// Add inserts a new event and returns the store-assigned id.
	Add(ctx context.Context, ev models.Event) (string, error)
	// ListAll returns every event in the collection in the store's
	// natural order.
	ListAll(ctx context.Context) ([]models.StoredEvent, error)
	// ListByCreator returns the events whose createdBy field equals the
	// given value exactly (case-sensitive, no normalization).
	ListByCreator(ctx context.Context, createdBy string) ([]models.StoredEvent, error)
}
