package publisher

import "qmatch/models"

// Publisher pushes price-change events to downstream consumers.
type Publisher interface {
	// PublishChange publishes one price-change event.
	PublishChange(event *models.PriceChangeEvent) error
	// Close releases the connection.
	Close() error
}

// Noop discards every event; used when no broker is configured.
type Noop struct{}

func (Noop) PublishChange(*models.PriceChangeEvent) error { return nil }
func (Noop) Close() error                                 { return nil }
