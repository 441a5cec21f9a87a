// internal/availability/service.go
package availability

import (
	"context"
)

// Service defines the interface for the availability service.
type Service interface {
	// Lookup fetches the ILS holdings for doc and builds its availability.
	// ILS failures degrade to an empty result carrying the error; only a
	// cancelled context is returned as an error.
	Lookup(ctx context.Context, doc Document) (*Availability, error)
}
