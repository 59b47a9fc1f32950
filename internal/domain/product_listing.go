package domain

import "time"

// Product is a listing offered for sale, either from the house catalog or by
// a registered seller. Identifier and code are server-assigned.
type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl"`
	Available   bool    `json:"available"`
	SellerID    string  `json:"sellerId,omitempty"`
	SellerName  string  `json:"sellerName,omitempty"`
	Location    string  `json:"location,omitempty"`
	Code        string  `json:"code,omitempty"`
	CreatedAt   string  `json:"createdAt,omitempty"`
}

func (p Product) EntityID() string { return p.ID }

func (p Product) Label() string { return p.Name }

func (p Product) SearchKeys() []string {
	keys := []string{p.Name, p.Location}
	if p.Code != "" {
		keys = append(keys, p.Code)
	}
	return keys
}

func (p Product) NameKey() string { return p.Name }

func (p Product) Created() time.Time { return ParseServerTime(p.CreatedAt) }
