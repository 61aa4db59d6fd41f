package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/R3E-Network/petstore/internal/app/services/catalog"
	"github.com/R3E-Network/petstore/internal/app/storage/memory"
	"github.com/R3E-Network/petstore/internal/logging"
)

func newCatalog() *catalog.Service {
	store := memory.New()
	return catalog.New(store, store, logging.NewDiscard("seed-test"))
}

func TestDemoLoadsOnce(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog()

	res, err := Demo(ctx, svc, logging.NewDiscard("seed-test"))
	require.NoError(t, err)
	assert.Equal(t, Result{Products: 4, Items: 5}, res)

	res, err = Demo(ctx, svc, logging.NewDiscard("seed-test"))
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	_, items, err := svc.ItemsOf(ctx, "LIZ-0001")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "18.50", items[0].Price.StringFixed(2))
}

func TestLoadRejectsBadPrice(t *testing.T) {
	data := []byte(`
products:
  - number: X-1
    name: Thing
    items:
      - number: "1"
        price: cheap
`)
	_, err := Load(context.Background(), newCatalog(), data, logging.NewDiscard("seed-test"))
	assert.ErrorContains(t, err, "bad price")
}
