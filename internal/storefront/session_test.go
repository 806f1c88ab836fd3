package storefront

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/storage"
	"github.com/angelmondragon/storefront/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticFetcher []catalog.Product

func (s staticFetcher) FetchProducts(context.Context) ([]catalog.Product, error) {
	return s, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{PageSize: 6},
		Cart:    config.CartConfig{StorageKey: "cart", LoginKey: "isLoggedIn", ShippingFee: "2.00"},
		Notify:  config.NotifyConfig{DismissAfter: time.Hour, FadeFor: time.Hour},
	}
}

func newBuilder(t *testing.T, store storage.Store) *Builder {
	t.Helper()
	products := staticFetcher{
		{ID: 1, Title: "Mug", Price: decimal.RequireFromString("8.50"), Category: "kitchen"},
		{ID: 2, Title: "Lamp", Price: decimal.RequireFromString("30"), Category: "home"},
	}
	b, err := NewBuilder(Deps{
		Config:  testConfig(),
		Storage: store,
		Loader:  catalog.NewLoader(products, nil),
	})
	require.NoError(t, err)
	return b
}

func TestNewBuilderValidatesDeps(t *testing.T) {
	_, err := NewBuilder(Deps{})
	assert.Error(t, err)
	_, err = NewBuilder(Deps{Config: testConfig()})
	assert.Error(t, err)
	_, err = NewBuilder(Deps{Config: testConfig(), Storage: storage.NewMemoryStore()})
	assert.Error(t, err)
}

func TestOpenRequiresSessionID(t *testing.T) {
	b := newBuilder(t, storage.NewMemoryStore())
	_, err := b.Open(context.Background(), "", HomeLayout)
	assert.Error(t, err)
}

func TestSessionAddFromCardPersistsAcrossRequests(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	b := newBuilder(t, store)

	home, err := b.Open(ctx, "visitor", HomeLayout)
	require.NoError(t, err)
	defer home.Close()
	home.Boot(ctx)
	home.Catalog.LoadPage(ctx, false)
	require.NoError(t, home.Catalog.AddFromCard(ctx, 1))
	require.NoError(t, home.Catalog.AddFromCard(ctx, 1))
	assert.Equal(t, []string{"2"}, home.Doc.Badges())

	cartPage, err := b.Open(ctx, "visitor", CartLayout)
	require.NoError(t, err)
	defer cartPage.Close()
	cartPage.Boot(ctx)

	assert.Equal(t, []string{"2"}, cartPage.Doc.Badges())
	subtotal, _ := cartPage.Doc.Region(page.RegionSubtotal)
	total, _ := cartPage.Doc.Region(page.RegionTotal)
	assert.Equal(t, "$17.00", subtotal.Text)
	assert.Equal(t, "$19.00", total.Text)

	other, err := b.Open(ctx, "someone-else", CartLayout)
	require.NoError(t, err)
	defer other.Close()
	other.Boot(ctx)
	assert.Equal(t, []string{"0"}, other.Doc.Badges())
}

func TestBootRendersAccountLinks(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	require.NoError(t, store.SetItem(ctx, "visitor", "isLoggedIn", "true"))
	b := newBuilder(t, store)

	s, err := b.Open(ctx, "visitor", HomeLayout)
	require.NoError(t, err)
	defer s.Close()
	s.Boot(ctx)

	require.Len(t, s.Links, 1)
	assert.Equal(t, "/profile", s.Links[0].Href)
	el, _ := s.Doc.Region(page.RegionAccount)
	assert.True(t, strings.Contains(string(el.HTML), "Profile"))
}

func TestCloseStopsBannerTimers(t *testing.T) {
	ctx := context.Background()
	b := newBuilder(t, storage.NewMemoryStore())
	s, err := b.Open(ctx, "visitor", APILayout)
	require.NoError(t, err)

	require.NoError(t, s.Catalog.AddFromCard(ctx, types.ProductID(2)))
	assert.Equal(t, 1, s.Notifier.Pending())
	s.Close()
	assert.Equal(t, 0, s.Notifier.Pending())
}
