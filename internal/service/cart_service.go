package service

import (
	"time"

	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CartLineDetail 购物车行项详情（实时计价，不落库）
type CartLineDetail struct {
	ItemID        uint              `json:"item_id"`
	Target        models.LineTarget `json:"target"`
	Name          string            `json:"name"`
	Quantity      int               `json:"quantity"`
	UnitPrice     models.Money      `json:"unit_price"`
	OriginalPrice models.Money      `json:"original_price"`
	OverridePrice *models.Money     `json:"override_price,omitempty"`
	LineTotal     models.Money      `json:"line_total"`
}

// CartView 购物车视图；Total 每次由当前行项与当前目录状态重算
type CartView struct {
	CartID uint             `json:"cart_id"`
	UserID uint             `json:"user_id"`
	Items  []CartLineDetail `json:"items"`
	Total  models.Money     `json:"total"`
}

// AddCartItemInput 加车输入
type AddCartItemInput struct {
	UserID        uint
	Target        models.LineTarget
	Quantity      int
	OverridePrice *models.Money
}

// UpdateCartItemInput 购物车行项更新输入
type UpdateCartItemInput struct {
	UserID        uint
	ItemID        uint
	Quantity      int
	OverridePrice *models.Money
	ClearOverride bool
}

// CartService 购物车服务
type CartService struct {
	cartRepo repository.CartRepository
	resolver *CatalogResolver
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, resolver *CatalogResolver) *CartService {
	return &CartService{
		cartRepo: cartRepo,
		resolver: resolver,
	}
}

// GetCart 获取用户当前购物车（含实时计价明细与合计）
func (s *CartService) GetCart(userID uint) (*CartView, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	view := &CartView{
		CartID: cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartLineDetail, 0, len(items)),
	}
	total := decimal.Zero
	for _, item := range items {
		detail, err := s.priceLine(item, now)
		if err != nil {
			return nil, err
		}
		view.Items = append(view.Items, *detail)
		total = total.Add(detail.LineTotal.Decimal)
	}
	view.Total = models.NewMoneyFromDecimal(total)
	return view, nil
}

// priceLine 对单个购物车行项实时计价
func (s *CartService) priceLine(item models.CartItem, now time.Time) (*CartLineDetail, error) {
	resolved, err := s.resolver.Resolve(item.Target)
	if err != nil {
		return nil, err
	}
	unitPrice, err := EffectivePrice(item.OverridePrice, nil, &resolved.View, now)
	if err != nil {
		return nil, err
	}
	lineTotal, err := LineTotal(unitPrice, item.Quantity)
	if err != nil {
		return nil, err
	}
	return &CartLineDetail{
		ItemID:        item.ID,
		Target:        item.Target,
		Name:          resolved.View.Name,
		Quantity:      item.Quantity,
		UnitPrice:     unitPrice,
		OriginalPrice: resolved.View.BasePrice,
		OverridePrice: item.OverridePrice,
		LineTotal:     lineTotal,
	}, nil
}

// AddItem 加入购物车；同目标行项合并数量
func (s *CartService) AddItem(input AddCartItemInput) (*CartView, error) {
	if input.UserID == 0 {
		return nil, ErrNotFound
	}
	if !input.Target.Valid() {
		return nil, ErrInvalidLineTarget
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.OverridePrice != nil && input.OverridePrice.Decimal.IsNegative() {
		return nil, ErrInvalidPrice
	}

	resolved, err := s.resolver.Resolve(input.Target)
	if err != nil {
		return nil, err
	}
	if !resolved.Available {
		return nil, ErrTargetNotAvailable
	}
	// 设备只能加入其归属用户的购物车
	if input.Target.Type == constants.LineTargetDevice && resolved.OwnerID != input.UserID {
		return nil, ErrOwnershipViolation
	}

	cart, err := s.cartRepo.GetOrCreateByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	existing, err := s.cartRepo.FindItemByTarget(cart.ID, input.Target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += input.Quantity
		if input.OverridePrice != nil {
			existing.OverridePrice = input.OverridePrice
		}
		if err := s.cartRepo.UpdateItem(existing); err != nil {
			return nil, err
		}
		return s.GetCart(input.UserID)
	}

	item := &models.CartItem{
		CartID:        cart.ID,
		Target:        input.Target,
		Quantity:      input.Quantity,
		OverridePrice: input.OverridePrice,
	}
	if err := s.cartRepo.CreateItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(input.UserID)
}

// UpdateItem 更新购物车行项数量或改价
func (s *CartService) UpdateItem(input UpdateCartItemInput) (*CartView, error) {
	if input.UserID == 0 || input.ItemID == 0 {
		return nil, ErrNotFound
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if input.OverridePrice != nil && input.OverridePrice.Decimal.IsNegative() {
		return nil, ErrInvalidPrice
	}

	cart, err := s.cartRepo.GetOrCreateByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	item.Quantity = input.Quantity
	if input.ClearOverride {
		item.OverridePrice = nil
	} else if input.OverridePrice != nil {
		item.OverridePrice = input.OverridePrice
	}
	if err := s.cartRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	return s.GetCart(input.UserID)
}

// RemoveItem 删除购物车行项
func (s *CartService) RemoveItem(userID, itemID uint) (*CartView, error) {
	if userID == 0 || itemID == 0 {
		return nil, ErrNotFound
	}
	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.cartRepo.GetItem(cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if err := s.cartRepo.DeleteItem(cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}
