package catalog

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/guonaihong/gout"

	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
	"github.com/rushikulya/marketkit/internal/validate"
)

// CreateProductInput is the typed create payload, shared by the admin form
// and the seller dashboard. Validation happens locally before any call.
type CreateProductInput struct {
	Name        string  `json:"name" validate:"required" vmsg:"required=Product name is required"`
	Description string  `json:"description" validate:"required" vmsg:"required=Description is required"`
	Price       float64 `json:"price" validate:"required,gt=0" vmsg:"*=Valid price is required"`
	ImageURL    string  `json:"imageUrl" validate:"required" vmsg:"required=Image is required"`
	Available   bool    `json:"available"`
	SellerID    string  `json:"sellerId,omitempty"`
	SellerName  string  `json:"sellerName,omitempty"`
	Location    string  `json:"location,omitempty"`
}

// ProductPatch carries a partial update: nil fields are left untouched
// server-side. Supplied fields get the same validation as create.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1" vmsg:"min=Product name is required"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1" vmsg:"min=Description is required"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0" vmsg:"gt=Valid price is required"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,min=1" vmsg:"min=Image is required"`
	Available   *bool    `json:"available,omitempty"`
	Location    *string  `json:"location,omitempty"`
}

// Products is the product catalog store.
type Products struct {
	*Store[domain.Product]
}

func NewProducts(rc *restclient.Client, bus EventBus.Bus) *Products {
	return &Products{newStore[domain.Product]("products", "/api/products", rc, bus)}
}

func (p *Products) Create(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Product{}, err
	}
	var resp struct {
		Product domain.Product `json:"product"`
	}
	if err := p.create(ctx, in, &resp); err != nil {
		return domain.Product{}, err
	}
	return resp.Product, nil
}

func (p *Products) Update(ctx context.Context, id string, fields map[string]interface{}) (domain.Product, error) {
	var patch ProductPatch
	if err := decodePatch(fields, &patch); err != nil {
		return domain.Product{}, err
	}
	var resp struct {
		Product domain.Product `json:"product"`
	}
	if err := p.update(ctx, id, patch, &resp); err != nil {
		return domain.Product{}, err
	}
	return resp.Product, nil
}

// ToggleAvailability flips exactly the availability flag of a cached
// product, touching no other field.
func (p *Products) ToggleAvailability(ctx context.Context, id string) error {
	cur, ok := p.Find(id)
	if !ok {
		return apperrs.NotFound("Product not found")
	}
	next := !cur.Available
	_, err := p.Update(ctx, id, map[string]interface{}{"available": next})
	return err
}

// LoadMine fetches one seller's products without replacing the shared cache.
func (p *Products) LoadMine(ctx context.Context, sellerID string) ([]domain.Product, error) {
	return p.loadQuery(ctx, gout.H{"sellerId": sellerID})
}
