package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/logger"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/queue"
	"github.com/fixmart-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	resolver    *CatalogResolver
	taxCalc     *TaxCalculator
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, resolver *CatalogResolver, taxCalc *TaxCalculator, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		resolver:    resolver,
		taxCalc:     taxCalc,
		queueClient: queueClient,
	}
}

// PlaceOrder 结算购物车为订单
// 整个流程在一个事务内完成：锁定购物车行、快照价格与税额、重算合计、清空购物车
func (s *OrderService) PlaceOrder(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	var orderID uint
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		cart, err := cartRepo.GetByUserForUpdate(userID)
		if err != nil {
			return err
		}
		if cart == nil {
			return ErrEmptyCart
		}
		cartItems, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		now := time.Now()
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			orderItem, err := s.snapshotLine(cartItem, now)
			if err != nil {
				return err
			}
			orderItems = append(orderItems, *orderItem)
		}

		order := &models.Order{
			OrderNo: generateOrderNo(),
			UserID:  userID,
			Status:  constants.OrderStatusPending,
		}
		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}
		if err := recalculateOrderTotals(orderRepo, order.ID); err != nil {
			return err
		}
		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	logger.Infow("order_placed", "order_id", order.ID, "order_no", order.OrderNo, "user_id", userID, "total", order.Total.String())
	return order, nil
}

// snapshotLine 将购物车行项转为订单行项；单价与税额在此刻定格
func (s *OrderService) snapshotLine(cartItem models.CartItem, now time.Time) (*models.OrderItem, error) {
	if cartItem.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	resolved, err := s.resolver.Resolve(cartItem.Target)
	if err != nil {
		return nil, err
	}
	unitPrice, err := EffectivePrice(cartItem.OverridePrice, nil, &resolved.View, now)
	if err != nil {
		return nil, err
	}
	tax := s.taxCalc.LineTax(unitPrice, cartItem.Quantity, resolved.View.Taxable)
	return &models.OrderItem{
		Target:    cartItem.Target,
		Name:      resolved.View.Name,
		Quantity:  cartItem.Quantity,
		Price:     unitPrice,
		TaxAmount: tax,
	}, nil
}

// RecalculateTotals 重算订单合计（total = Σ 单价×数量 + 税额合计；total_tax = Σ 行税额）
// 订单行项的任何增删改之后都必须调用
func (s *OrderService) RecalculateTotals(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrNotFound
	}
	if err := recalculateOrderTotals(s.orderRepo, orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

func recalculateOrderTotals(orderRepo repository.OrderRepository, orderID uint) error {
	items, err := orderRepo.ListItems(orderID)
	if err != nil {
		return err
	}
	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		totalTax = totalTax.Add(item.TaxAmount.Decimal)
	}
	total := subtotal.Add(totalTax)
	return orderRepo.UpdateTotals(orderID, models.NewMoneyFromDecimal(total), models.NewMoneyFromDecimal(totalTax))
}

// UpdateOrderStatus 员工更新订单状态；非法流转返回 ErrOrderStatusInvalid
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	targetStatus = NormalizeOrderStatus(targetStatus)
	if err := ValidateOrderStatusTransition(order.Status, targetStatus); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(order.ID, targetStatus); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(order.ID, targetStatus)

	return s.orderRepo.GetByID(order.ID)
}

// CancelOrder 用户取消自己的订单
func (s *OrderService) CancelOrder(orderID, userID uint) (*models.Order, error) {
	order, err := s.getOwnedOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	if err := ValidateOrderStatusTransition(order.Status, constants.OrderStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(order.ID, constants.OrderStatusCancelled)

	return s.orderRepo.GetByID(order.ID)
}

// enqueueStatusEmail 状态变更后入队通知邮件任务；队列不可用时仅记日志
func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil || orderID == 0 {
		return
	}
	receiverEmail, err := s.orderRepo.ResolveReceiverEmailByOrderID(orderID)
	if err == nil && strings.TrimSpace(receiverEmail) == "" {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

// GetOrderByUser 获取用户自己的订单详情
func (s *OrderService) GetOrderByUser(orderID, userID uint) (*models.Order, error) {
	return s.getOwnedOrder(orderID, userID)
}

// GetOrderByUserOrderNo 按订单号获取用户自己的订单详情
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNoAndUser(orderNo, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// getOwnedOrder 解析归属校验：他人订单返回 ErrOwnershipViolation
func (s *OrderService) getOwnedOrder(orderID, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order != nil {
		return order, nil
	}
	other, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if other != nil {
		return nil, ErrOwnershipViolation
	}
	return nil, ErrNotFound
}

// ListOrdersByUser 用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.orderRepo.ListByUser(filter)
}

// GetOrderForAdmin 员工端订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListOrdersForAdmin 员工端订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// AddOrderItemInput 员工补录订单行项输入
type AddOrderItemInput struct {
	OrderID       uint
	Target        models.LineTarget
	Quantity      int
	OverridePrice *models.Money
}

// AddOrderItem 员工向订单补录行项并重算合计
func (s *OrderService) AddOrderItem(input AddOrderItemInput) (*models.Order, error) {
	if !input.Target.Valid() {
		return nil, ErrInvalidLineTarget
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	order, err := s.orderRepo.GetByID(input.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}

	item, err := s.snapshotLine(models.CartItem{
		Target:        input.Target,
		Quantity:      input.Quantity,
		OverridePrice: input.OverridePrice,
	}, time.Now())
	if err != nil {
		return nil, err
	}
	item.OrderID = order.ID

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.CreateItem(item); err != nil {
			return err
		}
		return recalculateOrderTotals(orderRepo, order.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// UpdateOrderItemQuantity 员工调整订单行项数量并重算合计（税额按快照单价重算）
func (s *OrderService) UpdateOrderItemQuantity(orderID, itemID uint, quantity int) (*models.Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.orderRepo.GetItem(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	resolved, err := s.resolver.Resolve(item.Target)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.TaxAmount = s.taxCalc.LineTax(item.Price, quantity, resolved.View.Taxable)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.UpdateItem(item); err != nil {
			return err
		}
		return recalculateOrderTotals(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// RemoveOrderItem 员工删除订单行项并重算合计
func (s *OrderService) RemoveOrderItem(orderID, itemID uint) (*models.Order, error) {
	item, err := s.orderRepo.GetItem(orderID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.DeleteItem(orderID, itemID); err != nil {
			return err
		}
		return recalculateOrderTotals(orderRepo, orderID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("FM%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
