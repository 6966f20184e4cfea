package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/xiebiao/shopcore/internal/application/catalog"
	"github.com/xiebiao/shopcore/internal/domain/catalog"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shopcore/internal/testutil"
)

func TestPublishAndQueryProduct(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.Seller(t, db, "seller@example.com")

	catalogService := catalog.NewService(mysql.NewCatalogRepository(db))
	inventoryRepo := mysql.NewInventoryRepository(db)
	publish := appcatalog.NewPublishProductUseCase(catalogService, inventoryRepo, mysql.NewTxManager(db, 5*time.Second), zap.NewNop())
	ctx := context.Background()

	view, err := publish.Execute(ctx, appcatalog.PublishProductRequest{
		SellerID:  seller,
		Name:      "  Linen Shirt ",
		BasePrice: decimal.RequireFromString("40.00"),
		Variants: []appcatalog.PublishVariant{
			{Size: "M", Color: "white", SKU: "LIN-M", Stock: 7},
			{Size: "L", Color: "white", SKU: "LIN-L", AdditionalPrice: decimal.RequireFromString("5.00"), Stock: 0},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", view.Name)
	require.Len(t, view.Variants, 2)
	assert.True(t, decimal.RequireFromString("45").Equal(view.Variants[1].UnitPrice))
	require.NotNil(t, view.Variants[0].Stock)
	assert.Equal(t, 7, *view.Variants[0].Stock)

	assert.Equal(t, 7, testutil.Stock(t, db, view.Variants[0].ID))
	assert.EqualValues(t, 2, testutil.Count(t, db, &mysql.InventoryLogModel{}))

	t.Run("duplicate sku rolls back everything", func(t *testing.T) {
		_, err := publish.Execute(ctx, appcatalog.PublishProductRequest{
			SellerID:  seller,
			Name:      "Another",
			BasePrice: decimal.NewFromInt(10),
			Variants:  []appcatalog.PublishVariant{{SKU: "LIN-M", Stock: 1}},
		})
		assert.ErrorIs(t, err, catalog.ErrSKUDuplicate)
		assert.EqualValues(t, 1, testutil.Count(t, db, &mysql.ProductModel{}))
		assert.EqualValues(t, 2, testutil.Count(t, db, &mysql.InventoryModel{}))
	})

	t.Run("negative stock", func(t *testing.T) {
		_, err := publish.Execute(ctx, appcatalog.PublishProductRequest{
			SellerID:  seller,
			Name:      "Broken",
			BasePrice: decimal.NewFromInt(10),
			Variants:  []appcatalog.PublishVariant{{SKU: "BRK", Stock: -1}},
		})
		assert.Error(t, err)
	})

	t.Run("get includes stock", func(t *testing.T) {
		got, err := appcatalog.NewGetProductUseCase(catalogService, inventoryRepo).Execute(ctx, view.ID)
		require.NoError(t, err)
		require.Len(t, got.Variants, 2)
		require.NotNil(t, got.Variants[1].Stock)
		assert.Equal(t, 0, *got.Variants[1].Stock)
	})

	t.Run("get missing product", func(t *testing.T) {
		_, err := appcatalog.NewGetProductUseCase(catalogService, inventoryRepo).Execute(ctx, 999)
		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
	})

	t.Run("list by keyword", func(t *testing.T) {
		list, err := appcatalog.NewListProductsUseCase(catalogService).Execute(ctx, appcatalog.ListProductsRequest{
			Page: 1, PageSize: 10, Keyword: "Linen",
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, list.Total)

		list, err = appcatalog.NewListProductsUseCase(catalogService).Execute(ctx, appcatalog.ListProductsRequest{
			Page: 1, PageSize: 10, Keyword: "nothing",
		})
		require.NoError(t, err)
		assert.Zero(t, list.Total)
	})
}
