package catalog_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/require"

	"github.com/rushikulya/marketkit/internal/apitest"
	"github.com/rushikulya/marketkit/internal/apperrs"
	"github.com/rushikulya/marketkit/internal/catalog"
	"github.com/rushikulya/marketkit/internal/domain"
	"github.com/rushikulya/marketkit/internal/restclient"
)

type staticCreds string

func (c staticCreds) AuthHeader() (string, bool) { return string(c), c != "" }

func newClient(srv *apitest.Server, creds restclient.CredentialSource) *restclient.Client {
	return restclient.New(srv.URL, 2*time.Second, creds)
}

func TestProductsLoadReplacesCache(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	a := srv.SeedProduct(domain.Product{Name: "Rice", Price: 50})
	b := srv.SeedProduct(domain.Product{Name: "Dal", Price: 90})

	bus := EventBus.New()
	var reloads int32
	require.NoError(t, bus.Subscribe(catalog.TopicReloaded, func(kind string, n interface{}) {
		atomic.AddInt32(&reloads, 1)
	}))

	p := catalog.NewProducts(newClient(srv, nil), bus)
	items, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, a.ID, items[0].ID)
	require.Equal(t, b.ID, items[1].ID)
	require.Equal(t, 2, p.Len())

	got, ok := p.Find(a.ID)
	require.True(t, ok)
	require.Equal(t, "Rice", got.Name)

	bus.WaitAsync()
	require.Equal(t, int32(1), atomic.LoadInt32(&reloads))
}

func TestCreateProductValidPriceRequired(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	p := catalog.NewProducts(newClient(srv, nil), nil)

	_, err := p.Create(context.Background(), catalog.CreateProductInput{
		Name:        "Basket",
		Description: "Hand woven",
		Price:       0,
		ImageURL:    "http://cdn.local/basket.jpg",
	})
	require.True(t, apperrs.IsValidation(err))
	require.Equal(t, "Valid price is required", apperrs.Message(err))
	require.Zero(t, srv.TotalHits())
}

func TestCreateProductFieldMessages(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	p := catalog.NewProducts(newClient(srv, nil), nil)
	ctx := context.Background()

	_, err := p.Create(ctx, catalog.CreateProductInput{})
	require.Equal(t, "Product name is required", apperrs.Message(err))

	_, err = p.Create(ctx, catalog.CreateProductInput{Name: "Basket"})
	require.Equal(t, "Description is required", apperrs.Message(err))

	_, err = p.Create(ctx, catalog.CreateProductInput{Name: "Basket", Description: "d", Price: 10})
	require.Equal(t, "Image is required", apperrs.Message(err))

	require.Zero(t, srv.TotalHits())
}

func TestCreateProductRoundTrip(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	p := catalog.NewProducts(newClient(srv, nil), nil)
	ctx := context.Background()

	created, err := p.Create(ctx, catalog.CreateProductInput{
		Name:        "Basket",
		Description: "Hand woven",
		Price:       250,
		ImageURL:    "http://cdn.local/basket.jpg",
		Available:   true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Basket", created.Name)

	// creation does not patch the cache; a reload picks it up
	require.Zero(t, p.Len())
	items, err := p.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestUpdateProductRejectsUnknownField(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	seeded := srv.SeedProduct(domain.Product{Name: "Rice", Price: 50})
	p := catalog.NewProducts(newClient(srv, nil), nil)

	_, err := p.Update(context.Background(), seeded.ID, map[string]interface{}{"nmae": "Rice Premium"})
	require.True(t, apperrs.IsValidation(err))
	require.Equal(t, "Unknown field: nmae", apperrs.Message(err))
	require.Zero(t, srv.TotalHits())
}

func TestUpdateProductPatchValidation(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	seeded := srv.SeedProduct(domain.Product{Name: "Rice", Price: 50})
	p := catalog.NewProducts(newClient(srv, nil), nil)

	_, err := p.Update(context.Background(), seeded.ID, map[string]interface{}{"price": -1})
	require.Equal(t, "Valid price is required", apperrs.Message(err))
	require.Zero(t, srv.TotalHits())

	updated, err := p.Update(context.Background(), seeded.ID, map[string]interface{}{"price": 75})
	require.NoError(t, err)
	require.Equal(t, float64(75), updated.Price)
	require.Equal(t, "Rice", updated.Name)
}

func TestDeleteMissingProductKeepsCache(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedProduct(domain.Product{Name: "Rice"})
	p := catalog.NewProducts(newClient(srv, nil), nil)

	_, err := p.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, p.Len())

	err = p.Delete(context.Background(), "ghost")
	require.True(t, apperrs.IsNotFound(err))
	require.Equal(t, 1, p.Len())
}

func TestToggleAvailabilityFlipsOnlyThatFlag(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	seeded := srv.SeedProduct(domain.Product{
		Name: "Rice", Description: "Organic", Price: 50, Available: true, Location: "Ganjam",
	})
	p := catalog.NewProducts(newClient(srv, nil), nil)
	ctx := context.Background()

	_, err := p.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, p.ToggleAvailability(ctx, seeded.ID))

	items, err := p.Load(ctx)
	require.NoError(t, err)
	require.False(t, items[0].Available)
	require.Equal(t, "Rice", items[0].Name)
	require.Equal(t, float64(50), items[0].Price)
	require.Equal(t, "Ganjam", items[0].Location)

	require.True(t, apperrs.IsNotFound(p.ToggleAvailability(ctx, "ghost")))
}

func TestLoadMineDoesNotTouchSharedCache(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedProduct(domain.Product{Name: "Rice", SellerID: "u1"})
	srv.SeedProduct(domain.Product{Name: "Dal", SellerID: "u2"})
	p := catalog.NewProducts(newClient(srv, nil), nil)

	mine, err := p.LoadMine(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Rice", mine[0].Name)
	require.Zero(t, p.Len())
}

func TestServicesCreateAndUpdate(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	s := catalog.NewServices(newClient(srv, nil), nil)
	ctx := context.Background()

	_, err := s.Create(ctx, catalog.CreateServiceInput{ServiceName: "Plumbing"})
	require.Equal(t, "All fields are required", apperrs.Message(err))
	require.Zero(t, srv.TotalHits())

	created, err := s.Create(ctx, catalog.CreateServiceInput{
		ServiceName:   "Plumbing",
		AvailableTime: "9am-6pm",
		Location:      "Berhampur",
		SellerID:      "u1",
		SellerName:    "Ravi Sahu",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := s.Update(ctx, created.ID, map[string]interface{}{"availableTime": "10am-5pm"})
	require.NoError(t, err)
	require.Equal(t, "10am-5pm", updated.AvailableTime)
	require.Equal(t, "Plumbing", updated.ServiceName)
}

func TestSellersRequireCredentials(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.SeedSeller(domain.Seller{FirstName: "Ravi", Email: "ravi@example.com"}, "pw")

	anon := catalog.NewSellers(newClient(srv, nil), nil)
	_, err := anon.Load(context.Background())
	require.True(t, apperrs.IsAuth(err))

	admin := catalog.NewSellers(newClient(srv, staticCreds("Basic abc")), nil)
	items, err := admin.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestSellersUpdatePhoneValidation(t *testing.T) {
	t.Parallel()

	srv := apitest.New()
	t.Cleanup(srv.Close)
	seeded := srv.SeedSeller(domain.Seller{FirstName: "Ravi", Phone: "9876543210"}, "pw")

	admin := catalog.NewSellers(newClient(srv, staticCreds("Basic abc")), nil)
	_, err := admin.Update(context.Background(), seeded.ID, map[string]interface{}{"phone": "12345"})
	require.Equal(t, "Phone number must be 10 digits", apperrs.Message(err))

	updated, err := admin.Update(context.Background(), seeded.ID, map[string]interface{}{"phone": "1234567890"})
	require.NoError(t, err)
	require.Equal(t, "1234567890", updated.Phone)
}
