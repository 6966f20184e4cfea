package address_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appaddress "github.com/xiebiao/shopcore/internal/application/address"
	"github.com/xiebiao/shopcore/internal/domain/address"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/shopcore/internal/testutil"
)

func fields() address.Fields {
	return address.Fields{
		FullName:   "Grace Hopper",
		Line1:      "1 Navy Way",
		City:       "Arlington",
		State:      "VA",
		Country:    "US",
		PostalCode: "22202",
		Phone:      "555-0199",
	}
}

func TestAddressBook(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	buyer := testutil.Customer(t, db, "buyer@example.com")
	other := testutil.Customer(t, db, "other@example.com")

	svc := address.NewService(mysql.NewAddressRepository(db))
	create := appaddress.NewCreateAddressUseCase(svc, mysql.NewTxManager(db, 5*time.Second), zap.NewNop())
	manage := appaddress.NewManageAddressUseCase(svc)

	t.Run("账单地址同收货地址", func(t *testing.T) {
		views, err := create.Execute(ctx, appaddress.CreateAddressRequest{
			UserID: buyer, Type: address.TypeShipping, Fields: fields(), BillingSameAsShipping: true,
		})
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "shipping", views[0].Type)
		assert.Equal(t, "billing", views[1].Type)

		book, err := manage.Book(ctx, buyer)
		require.NoError(t, err)
		assert.Equal(t, 2, book.Count)
		assert.True(t, book.BillingSameAsShipping)
		require.NotNil(t, book.ShippingAddress)
		assert.Equal(t, views[0].ID, book.ShippingAddress.ID)
	})

	t.Run("修改账单地址后不再相同", func(t *testing.T) {
		book, err := manage.Book(ctx, buyer)
		require.NoError(t, err)

		f := fields()
		f.Line2 = "Suite 100"
		_, err = manage.Update(ctx, buyer, book.BillingAddress.ID, "", f)
		require.NoError(t, err)

		book, err = manage.Book(ctx, buyer)
		require.NoError(t, err)
		assert.False(t, book.BillingSameAsShipping)
	})

	t.Run("缺少字段时整体回滚", func(t *testing.T) {
		f := fields()
		f.City = ""
		_, err := create.Execute(ctx, appaddress.CreateAddressRequest{
			UserID: other, Type: address.TypeShipping, Fields: f, BillingSameAsShipping: true,
		})
		assert.ErrorIs(t, err, address.ErrMissingFields)

		book, err := manage.Book(ctx, other)
		require.NoError(t, err)
		assert.Zero(t, book.Count)
		assert.Empty(t, book.Shipping)
		assert.Nil(t, book.BillingAddress)
	})

	t.Run("不能删除他人的地址", func(t *testing.T) {
		book, err := manage.Book(ctx, buyer)
		require.NoError(t, err)

		err = manage.Delete(ctx, other, book.ShippingAddress.ID)
		assert.ErrorIs(t, err, address.ErrAddressNotFound)
		require.NoError(t, manage.Delete(ctx, buyer, book.ShippingAddress.ID))
	})
}
