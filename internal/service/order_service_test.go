package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/fixmart-next/internal/constants"
	"github.com/fixmart-next/internal/models"
	"github.com/fixmart-next/internal/repository"
)

func (f *catalogFixture) newOrderService() *OrderService {
	resolver := NewCatalogResolver(
		repository.NewProductRepository(f.db),
		repository.NewDeviceRepository(f.db),
		repository.NewDepartmentRepository(f.db),
	)
	return NewOrderService(
		repository.NewOrderRepository(f.db),
		repository.NewCartRepository(f.db),
		resolver,
		NewTaxCalculator(0.07),
		nil,
	)
}

func TestPlaceOrderSnapshotsCart(t *testing.T) {
	f := setupCatalogFixture(t, "order_place")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	// 应税商品 100.00 九折 × 2，应税设备 150.00 × 1
	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: productTarget(f.product.ID), Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: deviceTarget(f.ownDevice.ID), Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	order, err := orderSvc.PlaceOrder(f.user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending status, got %s", order.Status)
	}
	if !strings.HasPrefix(order.OrderNo, "FM") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	// 180.00 + 12.60 + 150.00 + 10.50
	if order.TotalTax.String() != "23.10" {
		t.Fatalf("expected total tax 23.10, got %s", order.TotalTax.String())
	}
	if order.Total.String() != "353.10" {
		t.Fatalf("expected total 353.10, got %s", order.Total.String())
	}

	// 下单后购物车清空，但购物车本身保留
	view, err := cartSvc.GetCart(f.user.ID)
	if err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected cart emptied, got %d items", len(view.Items))
	}
	var cartCount int64
	if err := f.db.Model(&models.Cart{}).Where("user_id = ?", f.user.ID).Count(&cartCount).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if cartCount != 1 {
		t.Fatalf("expected cart row kept, got %d", cartCount)
	}
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := setupCatalogFixture(t, "order_empty")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	// 购物车尚不存在
	if _, err := orderSvc.PlaceOrder(f.user.ID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart without cart, got %v", err)
	}

	// 购物车存在但无行项
	if _, err := cartSvc.GetCart(f.user.ID); err != nil {
		t.Fatalf("GetCart error: %v", err)
	}
	if _, err := orderSvc.PlaceOrder(f.user.ID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart with empty cart, got %v", err)
	}

	var orderCount int64
	if err := f.db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("expected no order created, got %d", orderCount)
	}
}

func TestOrderSnapshotImmuneToCatalogChange(t *testing.T) {
	f := setupCatalogFixture(t, "order_snapshot")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: productTarget(f.plainProduct.ID), Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.PlaceOrder(f.user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.Total.String() != "100.00" {
		t.Fatalf("expected total 100.00, got %s", order.Total.String())
	}

	// 目录改价不影响已下单金额
	if err := f.db.Model(&models.Product{}).Where("id = ?", f.plainProduct.ID).Update("price", moneyFromFloat(999)).Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	reloaded, err := orderSvc.GetOrderForAdmin(order.ID)
	if err != nil {
		t.Fatalf("GetOrderForAdmin error: %v", err)
	}
	if reloaded.Total.String() != "100.00" {
		t.Fatalf("expected snapshot total 100.00, got %s", reloaded.Total.String())
	}

	// 重算只依赖快照，结果不变
	recalced, err := orderSvc.RecalculateTotals(order.ID)
	if err != nil {
		t.Fatalf("RecalculateTotals error: %v", err)
	}
	if recalced.Total.String() != "100.00" || recalced.TotalTax.String() != "0.00" {
		t.Fatalf("expected recalculated totals unchanged, got total=%s tax=%s", recalced.Total.String(), recalced.TotalTax.String())
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	f := setupCatalogFixture(t, "order_status")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: productTarget(f.plainProduct.ID), Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.PlaceOrder(f.user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid for pending -> delivered, got %v", err)
	}

	order, err = orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("UpdateOrderStatus error: %v", err)
	}
	if order.Status != constants.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", order.Status)
	}

	order, err = orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("UpdateOrderStatus error: %v", err)
	}
	order, err = orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("UpdateOrderStatus error: %v", err)
	}
	if order.Status != constants.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", order.Status)
	}

	// 终态不可再流转
	if _, err := orderSvc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid from delivered, got %v", err)
	}
}

func TestCancelOrderOwnership(t *testing.T) {
	f := setupCatalogFixture(t, "order_cancel")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: productTarget(f.plainProduct.ID), Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.PlaceOrder(f.user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	// 他人订单拒绝取消
	if _, err := orderSvc.CancelOrder(order.ID, f.otherUser.ID); !errors.Is(err, ErrOwnershipViolation) {
		t.Fatalf("expected ErrOwnershipViolation, got %v", err)
	}
	if _, err := orderSvc.CancelOrder(99999, f.user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	order, err = orderSvc.CancelOrder(order.ID, f.user.ID)
	if err != nil {
		t.Fatalf("CancelOrder error: %v", err)
	}
	if order.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", order.Status)
	}

	// 已取消订单不可重复取消
	if _, err := orderSvc.CancelOrder(order.ID, f.user.ID); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
}

func TestOrderItemAdjustments(t *testing.T) {
	f := setupCatalogFixture(t, "order_items")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: productTarget(f.plainProduct.ID), Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.PlaceOrder(f.user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}
	if order.Total.String() != "50.00" {
		t.Fatalf("expected total 50.00, got %s", order.Total.String())
	}

	// 补录应税商品：90.00 + 6.30
	order, err = orderSvc.AddOrderItem(AddOrderItemInput{
		OrderID:  order.ID,
		Target:   productTarget(f.product.ID),
		Quantity: 1,
	})
	if err != nil {
		t.Fatalf("AddOrderItem error: %v", err)
	}
	if order.Total.String() != "146.30" || order.TotalTax.String() != "6.30" {
		t.Fatalf("unexpected totals after add: total=%s tax=%s", order.Total.String(), order.TotalTax.String())
	}

	var added *models.OrderItem
	for i := range order.Items {
		if order.Items[i].Target.Type == constants.LineTargetProduct && order.Items[i].Target.ID == f.product.ID {
			added = &order.Items[i]
		}
	}
	if added == nil {
		t.Fatalf("added item not found in order")
	}

	// 调整数量后税额按快照单价重算
	order, err = orderSvc.UpdateOrderItemQuantity(order.ID, added.ID, 2)
	if err != nil {
		t.Fatalf("UpdateOrderItemQuantity error: %v", err)
	}
	if order.Total.String() != "242.60" || order.TotalTax.String() != "12.60" {
		t.Fatalf("unexpected totals after quantity change: total=%s tax=%s", order.Total.String(), order.TotalTax.String())
	}
	if _, err := orderSvc.UpdateOrderItemQuantity(order.ID, added.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	// 删除行项后合计回落
	order, err = orderSvc.RemoveOrderItem(order.ID, added.ID)
	if err != nil {
		t.Fatalf("RemoveOrderItem error: %v", err)
	}
	if order.Total.String() != "50.00" || order.TotalTax.String() != "0.00" {
		t.Fatalf("unexpected totals after remove: total=%s tax=%s", order.Total.String(), order.TotalTax.String())
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item left, got %d", len(order.Items))
	}

	if _, err := orderSvc.RemoveOrderItem(order.ID, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetOrderByUser(t *testing.T) {
	f := setupCatalogFixture(t, "order_get")
	cartSvc := f.newCartService()
	orderSvc := f.newOrderService()

	if _, err := cartSvc.AddItem(AddCartItemInput{UserID: f.user.ID, Target: productTarget(f.plainProduct.ID), Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	order, err := orderSvc.PlaceOrder(f.user.ID)
	if err != nil {
		t.Fatalf("PlaceOrder error: %v", err)
	}

	got, err := orderSvc.GetOrderByUser(order.ID, f.user.ID)
	if err != nil {
		t.Fatalf("GetOrderByUser error: %v", err)
	}
	if got.ID != order.ID || len(got.Items) != 1 {
		t.Fatalf("unexpected order: %+v", got)
	}

	if _, err := orderSvc.GetOrderByUser(order.ID, f.otherUser.ID); !errors.Is(err, ErrOwnershipViolation) {
		t.Fatalf("expected ErrOwnershipViolation, got %v", err)
	}

	byNo, err := orderSvc.GetOrderByUserOrderNo(order.OrderNo, f.user.ID)
	if err != nil {
		t.Fatalf("GetOrderByUserOrderNo error: %v", err)
	}
	if byNo.ID != order.ID {
		t.Fatalf("expected order %d, got %d", order.ID, byNo.ID)
	}
	if _, err := orderSvc.GetOrderByUserOrderNo(order.OrderNo, f.otherUser.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign order no, got %v", err)
	}

	orders, total, err := orderSvc.ListOrdersByUser(repository.OrderListFilter{UserID: f.user.ID, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("ListOrdersByUser error: %v", err)
	}
	if total != 1 || len(orders) != 1 {
		t.Fatalf("expected 1 order, got total=%d len=%d", total, len(orders))
	}
}
