package address

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/shopcore/internal/domain/address"
	"github.com/xiebiao/shopcore/internal/infrastructure/persistence/mysql"
)

// View 地址视图
type View struct {
	ID         uint   `json:"id"`
	Type       string `json:"type"`
	FullName   string `json:"full_name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone_number"`
	UpdatedAt  string `json:"updated_at"`
}

// BookView 地址簿：按类型分组，并给出最近使用的收货/账单地址
type BookView struct {
	Shipping              []View `json:"shipping"`
	Billing               []View `json:"billing"`
	ShippingAddress       *View  `json:"shipping_address"`
	BillingAddress        *View  `json:"billing_address"`
	BillingSameAsShipping bool   `json:"billing_same_as_shipping"`
	Count                 int    `json:"count"`
}

func toView(a *address.Address) View {
	return View{
		ID:         a.ID,
		Type:       string(a.Type),
		FullName:   a.FullName,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		Phone:      a.Phone,
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateAddressUseCase 新建地址
// BillingSameAsShipping时同时写入一条内容相同的账单地址
type CreateAddressUseCase struct {
	addressService address.Service
	txManager      *mysql.TxManager
	logger         *zap.Logger
}

func NewCreateAddressUseCase(addressService address.Service, txManager *mysql.TxManager, logger *zap.Logger) *CreateAddressUseCase {
	return &CreateAddressUseCase{addressService: addressService, txManager: txManager, logger: logger}
}

// CreateAddressRequest 新建地址请求
type CreateAddressRequest struct {
	UserID                uint
	Type                  address.Type
	Fields                address.Fields
	BillingSameAsShipping bool
}

// Execute 返回新建的全部地址，收货地址在前
func (uc *CreateAddressUseCase) Execute(ctx context.Context, req CreateAddressRequest) ([]View, error) {
	var created []*address.Address
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		a, err := uc.addressService.Create(txCtx, req.UserID, req.Type, req.Fields)
		if err != nil {
			return err
		}
		created = append(created, a)

		if req.BillingSameAsShipping && req.Type == address.TypeShipping {
			billing, err := uc.addressService.Create(txCtx, req.UserID, address.TypeBilling, req.Fields)
			if err != nil {
				return err
			}
			created = append(created, billing)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("地址已创建", zap.Uint("user_id", req.UserID), zap.Int("count", len(created)))
	views := make([]View, len(created))
	for i, a := range created {
		views[i] = toView(a)
	}
	return views, nil
}

// ManageAddressUseCase 修改、删除、查看地址簿
type ManageAddressUseCase struct {
	addressService address.Service
}

func NewManageAddressUseCase(addressService address.Service) *ManageAddressUseCase {
	return &ManageAddressUseCase{addressService: addressService}
}

func (uc *ManageAddressUseCase) Update(ctx context.Context, userID, id uint, t address.Type, f address.Fields) (*View, error) {
	a, err := uc.addressService.Update(ctx, userID, id, t, f)
	if err != nil {
		return nil, err
	}
	v := toView(a)
	return &v, nil
}

func (uc *ManageAddressUseCase) Delete(ctx context.Context, userID, id uint) error {
	return uc.addressService.Delete(ctx, userID, id)
}

// Book 列表已按更新时间倒序，每类第一条即最近的地址
func (uc *ManageAddressUseCase) Book(ctx context.Context, userID uint) (*BookView, error) {
	list, err := uc.addressService.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	book := &BookView{Shipping: []View{}, Billing: []View{}, Count: len(list)}
	var shipping, billing *address.Address
	for _, a := range list {
		switch a.Type {
		case address.TypeShipping:
			if shipping == nil {
				shipping = a
			}
			book.Shipping = append(book.Shipping, toView(a))
		case address.TypeBilling:
			if billing == nil {
				billing = a
			}
			book.Billing = append(book.Billing, toView(a))
		}
	}
	if shipping != nil {
		v := toView(shipping)
		book.ShippingAddress = &v
	}
	if billing != nil {
		v := toView(billing)
		book.BillingAddress = &v
	}
	book.BillingSameAsShipping = shipping != nil && billing != nil && shipping.SameLocation(billing)
	return book, nil
}
