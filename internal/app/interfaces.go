package app

import (
	"context"

	"github.com/asaskevich/EventBus"

	"github.com/rushikulya/marketkit/config"
	"github.com/rushikulya/marketkit/internal/catalog"
	"github.com/rushikulya/marketkit/internal/contact"
	"github.com/rushikulya/marketkit/internal/session"
)

// SessionProvider provides the role session manager
type SessionProvider interface {
	Session() *session.Manager
}

// CatalogProvider provides the per-entity-type stores
type CatalogProvider interface {
	Products() *catalog.Products
	Services() *catalog.Services
	Sellers() *catalog.Sellers
}

// ContactProvider provides the buyer-to-seller contact handoff
type ContactProvider interface {
	Contact() *contact.Handoff
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BusProvider provides the in-process event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines all provider interfaces for full application context.
// Views should depend on specific providers or this combined interface.
type AppContext interface {
	SessionProvider
	CatalogProvider
	ContactProvider
	ConfigProvider
	BusProvider

	// RefreshAll reloads every catalog, failing on the first error.
	RefreshAll(ctx context.Context) error
	// Release stops background jobs and flushes resources.
	Release()
}
