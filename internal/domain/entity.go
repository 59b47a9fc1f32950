package domain

// Entity is implemented by every catalog row the client caches.
type Entity interface {
	// EntityID returns the server-assigned identifier.
	EntityID() string
	// Label is the display name used in notices and confirmations.
	Label() string
	// SearchKeys are the targets of case-insensitive substring search.
	SearchKeys() []string
	// NameKey is the target of the exact-match name filter.
	NameKey() string
}
