package catalog

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/guonaihong/gout"

	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
	"github.com/rushikulya/marketkit/internal/validate"
)

// CreateServiceInput is the seller dashboard's service listing payload.
type CreateServiceInput struct {
	ServiceName   string `json:"serviceName" validate:"required"`
	AvailableTime string `json:"availableTime" validate:"required"`
	Location      string `json:"location" validate:"required"`
	SellerID      string `json:"sellerId" validate:"required"`
	SellerName    string `json:"sellerName,omitempty"`
}

type ServicePatch struct {
	ServiceName   *string `json:"serviceName,omitempty" validate:"omitempty,min=1"`
	AvailableTime *string `json:"availableTime,omitempty" validate:"omitempty,min=1"`
	Location      *string `json:"location,omitempty" validate:"omitempty,min=1"`
}

// Services is the service catalog store.
type Services struct {
	*Store[domain.Service]
}

func NewServices(rc *restclient.Client, bus EventBus.Bus) *Services {
	return &Services{newStore[domain.Service]("services", "/api/services", rc, bus)}
}

func (s *Services) Create(ctx context.Context, in CreateServiceInput) (domain.Service, error) {
	if err := validate.Struct(in); err != nil {
		return domain.Service{}, err
	}
	var resp struct {
		Service domain.Service `json:"service"`
	}
	if err := s.create(ctx, in, &resp); err != nil {
		return domain.Service{}, err
	}
	return resp.Service, nil
}

func (s *Services) Update(ctx context.Context, id string, fields map[string]interface{}) (domain.Service, error) {
	var patch ServicePatch
	if err := decodePatch(fields, &patch); err != nil {
		return domain.Service{}, err
	}
	var resp struct {
		Service domain.Service `json:"service"`
	}
	if err := s.update(ctx, id, patch, &resp); err != nil {
		return domain.Service{}, err
	}
	return resp.Service, nil
}

// LoadMine fetches one seller's services without replacing the shared cache.
func (s *Services) LoadMine(ctx context.Context, sellerID string) ([]domain.Service, error) {
	return s.loadQuery(ctx, gout.H{"sellerId": sellerID})
}
