package catalog

import (
	"context"

	"github.com/asaskevich/EventBus"

	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
)

// SellerPatch carries the profile fields an admin (or the seller) may edit.
// The password is not among them: it is write-only at registration time.
type SellerPatch struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"lastName,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"email,omitempty" validate:"omitempty,min=1"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,phone10" vmsg:"phone10=Phone number must be 10 digits"`
}

// Sellers is the seller account store. Every endpoint behind it is
// admin-gated; the credential header rides in via the session manager.
type Sellers struct {
	*Store[domain.Seller]
}

func NewSellers(rc *restclient.Client, bus EventBus.Bus) *Sellers {
	return &Sellers{newStore[domain.Seller]("sellers", "/api/sellers", rc, bus)}
}

func (s *Sellers) Update(ctx context.Context, id string, fields map[string]interface{}) (domain.Seller, error) {
	var patch SellerPatch
	if err := decodePatch(fields, &patch); err != nil {
		return domain.Seller{}, err
	}
	var resp struct {
		Seller domain.Seller `json:"seller"`
	}
	if err := s.update(ctx, id, patch, &resp); err != nil {
		return domain.Seller{}, err
	}
	return resp.Seller, nil
}
