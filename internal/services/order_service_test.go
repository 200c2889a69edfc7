package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/payment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway stands in for the payment provider. Signatures equal to
// "valid:<orderID>" verify; everything else fails.
type fakeGateway struct {
	createdOrders int
	failCreate    bool
}

func (f *fakeGateway) CreateOrder(_ context.Context, amountPaisa int64, currency, receipt string, _ map[string]string) (*payment.GatewayOrder, error) {
	if f.failCreate {
		return nil, fmt.Errorf("gateway unavailable")
	}
	f.createdOrders++
	return &payment.GatewayOrder{
		ID:       fmt.Sprintf("order_fake_%d", f.createdOrders),
		Amount:   amountPaisa,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (f *fakeGateway) VerifySignature(gatewayOrderID, _, signature string) bool {
	return signature == "valid:"+gatewayOrderID
}

func (f *fakeGateway) KeyID() string { return "test_key" }

// recordingNotifier captures outbound email without sending anything.
type recordingNotifier struct {
	confirmations []string
	statusUpdates []string
	delivered     []string
	stockAlerts   int
}

func (r *recordingNotifier) SendWelcome(*models.User, string) error       { return nil }
func (r *recordingNotifier) SendPasswordReset(*models.User, string) error { return nil }

func (r *recordingNotifier) SendOrderConfirmation(order *models.Order, _ *models.User) error {
	r.confirmations = append(r.confirmations, order.OrderRef)
	return nil
}

func (r *recordingNotifier) SendOrderStatusUpdate(order *models.Order, _ *models.User, _ string) error {
	r.statusUpdates = append(r.statusUpdates, order.OrderRef)
	return nil
}

func (r *recordingNotifier) SendOrderDelivered(order *models.Order, _ *models.User) error {
	r.delivered = append(r.delivered, order.OrderRef)
	return nil
}

func (r *recordingNotifier) SendStockAlert(*InventoryReport, []string) error {
	r.stockAlerts++
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemTopping{},
		&models.OrderStatusEvent{},
	))
	return db
}

type orderFixture struct {
	db       *gorm.DB
	gateway  *fakeGateway
	notifier *recordingNotifier
	svc      OrderService
	user     models.User
	base     models.Ingredient
	sauce    models.Ingredient
	cheese   models.Ingredient
	veggie   models.Ingredient
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	db := openTestDB(t)

	f := &orderFixture{
		db:       db,
		gateway:  &fakeGateway{},
		notifier: &recordingNotifier{},
	}
	f.svc = NewOrderService(db, f.gateway, f.notifier, nil, nil, "INR")

	f.user = models.User{Email: "pepp@example.com", Name: "Pep", Role: models.RoleUser}
	require.NoError(t, f.user.SetPassword("secret1"))
	require.NoError(t, db.Create(&f.user).Error)

	f.base = models.Ingredient{Category: models.CategoryBase, Name: "Thin Crust", Price: 150, Stock: 20, Threshold: 5, IsAvailable: true, IsActive: true}
	f.sauce = models.Ingredient{Category: models.CategorySauce, Name: "Marinara", Price: 80, Stock: 20, Threshold: 5, IsAvailable: true, IsActive: true}
	f.cheese = models.Ingredient{Category: models.CategoryCheese, Name: "Mozzarella", Price: 120, Stock: 20, Threshold: 5, IsAvailable: true, IsActive: true}
	f.veggie = models.Ingredient{Category: models.CategoryVeggie, Name: "Olives", Price: 60, Stock: 20, Threshold: 5, IsAvailable: true, IsActive: true}
	for _, ing := range []*models.Ingredient{&f.base, &f.sauce, &f.cheese, &f.veggie} {
		require.NoError(t, db.Create(ing).Error)
	}
	return f
}

func (f *orderFixture) cartRequest(quantity int) CreateOrderRequest {
	return CreateOrderRequest{
		Items: []OrderItemRequest{{
			BaseID:    f.base.ID,
			SauceID:   f.sauce.ID,
			CheeseID:  f.cheese.ID,
			VeggieIDs: []uint{f.veggie.ID},
			Quantity:  quantity,
			Size:      models.SizeLarge,
			CrustType: models.CrustThin,
		}},
		DeliveryAddress: models.Address{Street: "1 Oven St", City: "Pune", State: "MH", ZipCode: "411001"},
	}
}

// placePaid walks a cart through checkout and verification.
func (f *orderFixture) placePaid(t *testing.T, quantity int) *models.Order {
	t.Helper()
	draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(quantity))
	require.NoError(t, err)
	order, err := f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID:   draft.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "valid:" + draft.GatewayOrderID,
	})
	require.NoError(t, err)
	return order
}

func (f *orderFixture) stockOf(t *testing.T, id uint) int {
	t.Helper()
	var ing models.Ingredient
	require.NoError(t, f.db.First(&ing, id).Error)
	return ing.Stock
}

func TestCreatePaymentOrder(t *testing.T) {
	f := newOrderFixture(t)

	draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(2))
	require.NoError(t, err)

	// (150 + 80 + 120 + 60) * 1.3 * 2
	assert.InDelta(t, 1066.00, draft.TotalAmount, 0.001)
	assert.Equal(t, int64(106600), draft.AmountPaisa)
	assert.Equal(t, "INR", draft.Currency)
	assert.Equal(t, "test_key", draft.KeyID)
	assert.Regexp(t, `^PZ\d{14}$`, draft.OrderRef)

	var order models.Order
	require.NoError(t, f.db.Preload("Items.Toppings").Preload("StatusHistory").First(&order, draft.OrderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Thin Crust", order.Items[0].BaseName)
	require.Len(t, order.Items[0].Toppings, 1)
	assert.Equal(t, "Olives", order.Items[0].Toppings[0].Name)
	require.Len(t, order.StatusHistory, 1)
	assert.Equal(t, models.StatusPending, order.StatusHistory[0].Status)
	require.NotNil(t, order.EstimatedDeliveryTime)
	assert.WithinDuration(t, time.Now().Add(45*time.Minute), *order.EstimatedDeliveryTime, time.Minute)

	// Checkout prices the cart without reserving stock
	assert.Equal(t, 20, f.stockOf(t, f.base.ID))
}

func TestCreatePaymentOrderRejectsInactiveIngredient(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.db.Model(&f.veggie).Update("is_active", false).Error)

	_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestCreatePaymentOrderRejectsInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.db.Model(&f.cheese).Update("stock", 1).Error)

	_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(2))
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 0, f.gateway.createdOrders)
}

func TestCreatePaymentOrderGatewayFailure(t *testing.T) {
	f := newOrderFixture(t)
	f.gateway.failCreate = true

	_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	assert.Error(t, err)

	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "no order row without a gateway order")
}

func TestCreatePaymentOrderRetriesRefCollision(t *testing.T) {
	f := newOrderFixture(t)

	const taken = "PZ20260829000001"
	require.NoError(t, f.db.Create(&models.Order{
		OrderRef: taken,
		UserID:   f.user.ID,
		Currency: "INR",
	}).Error)

	calls := 0
	f.svc.(*orderService).newOrderRef = func(now time.Time) string {
		calls++
		if calls < 3 {
			return taken
		}
		return models.NewOrderRef(now)
	}

	draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "two collisions then a fresh reference")
	assert.NotEqual(t, taken, draft.OrderRef)
}

func TestCreatePaymentOrderGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newOrderFixture(t)

	const taken = "PZ20260829000002"
	require.NoError(t, f.db.Create(&models.Order{
		OrderRef: taken,
		UserID:   f.user.ID,
		Currency: "INR",
	}).Error)

	f.svc.(*orderService).newOrderRef = func(time.Time) string { return taken }

	_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	assert.Error(t, err)

	// Only the pre-seeded order persists
	var count int64
	require.NoError(t, f.db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVerifyPayment(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placePaid(t, 2)

	assert.Equal(t, models.StatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)
	assert.Equal(t, "pay_1", order.GatewayPaymentID)

	// Base, sauce, cheese and the topping each drop by the quantity
	for _, id := range []uint{f.base.ID, f.sauce.ID, f.cheese.ID, f.veggie.ID} {
		assert.Equal(t, 18, f.stockOf(t, id))
	}

	require.Len(t, order.StatusHistory, 2)
	assert.Equal(t, models.StatusConfirmed, order.StatusHistory[1].Status)
	assert.Equal(t, []string{order.OrderRef}, f.notifier.confirmations)
}

func TestVerifyPaymentBadSignature(t *testing.T) {
	f := newOrderFixture(t)
	draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	require.NoError(t, err)

	_, err = f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID:   draft.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "forged",
	})
	assert.ErrorIs(t, err, ErrSignatureMismatch)

	var order models.Order
	require.NoError(t, f.db.First(&order, draft.OrderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 20, f.stockOf(t, f.base.ID))
}

func TestVerifyPaymentReplayIsIdempotent(t *testing.T) {
	f := newOrderFixture(t)
	order := f.placePaid(t, 1)

	replayed, err := f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "valid:" + order.GatewayOrderID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, replayed.PaymentStatus)

	// Stock is decremented exactly once
	assert.Equal(t, 19, f.stockOf(t, f.base.ID))
	assert.Len(t, f.notifier.confirmations, 1)
}

func TestVerifyPaymentInsufficientStockRollsBack(t *testing.T) {
	f := newOrderFixture(t)
	draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(2))
	require.NoError(t, err)

	// Stock drains between checkout and verification
	require.NoError(t, f.db.Model(&f.veggie).Update("stock", 1).Error)

	_, err = f.svc.VerifyPayment(context.Background(), VerifyPaymentRequest{
		GatewayOrderID:   draft.GatewayOrderID,
		GatewayPaymentID: "pay_1",
		Signature:        "valid:" + draft.GatewayOrderID,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Nothing committed: order still pending, earlier decrements undone
	var order models.Order
	require.NoError(t, f.db.First(&order, draft.OrderID).Error)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 20, f.stockOf(t, f.base.ID))
	assert.Equal(t, 20, f.stockOf(t, f.sauce.ID))
	assert.Equal(t, 20, f.stockOf(t, f.cheese.ID))
	assert.Equal(t, 1, f.stockOf(t, f.veggie.ID))
}

func TestSettlePaymentIsConditionalOnPendingState(t *testing.T) {
	f := newOrderFixture(t)
	paid := f.placePaid(t, 1)

	// A second callback that lost the race sees the order already settled
	// and must not touch stock or the history again.
	order, err := f.svc.(*orderService).loadByGatewayOrderID(paid.GatewayOrderID)
	require.NoError(t, err)
	err = f.svc.(*orderService).settlePayment(order, "pay_other")
	assert.ErrorIs(t, err, errPaymentAlreadySettled)

	assert.Equal(t, 19, f.stockOf(t, f.base.ID))
	var reloaded models.Order
	require.NoError(t, f.db.Preload("StatusHistory").First(&reloaded, paid.ID).Error)
	assert.Equal(t, "pay_1", reloaded.GatewayPaymentID)
	assert.Len(t, reloaded.StatusHistory, 2)
}

func TestCancelOrder(t *testing.T) {
	f := newOrderFixture(t)

	t.Run("pending order cancels", func(t *testing.T) {
		draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
		require.NoError(t, err)

		order, err := f.svc.CancelOrder(f.user.ID, draft.OrderID, "")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, order.Status)
		last := order.StatusHistory[len(order.StatusHistory)-1]
		assert.Equal(t, "Order cancelled by customer", last.Message)
	})

	t.Run("confirmed order cancels with reason", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		order, err := f.svc.CancelOrder(f.user.ID, paid.ID, "Ordered by mistake")
		require.NoError(t, err)
		assert.Equal(t, models.StatusCancelled, order.Status)
		last := order.StatusHistory[len(order.StatusHistory)-1]
		assert.Equal(t, "Ordered by mistake", last.Message)
	})

	t.Run("preparing order refuses", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		_, err := f.svc.UpdateStatus(context.Background(), paid.ID, models.StatusPreparing, "", false)
		require.NoError(t, err)

		_, err = f.svc.CancelOrder(f.user.ID, paid.ID, "")
		assert.ErrorIs(t, err, ErrNotCancellable)
	})

	t.Run("other user's order is invisible", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		_, err := f.svc.CancelOrder(f.user.ID+99, paid.ID, "")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestRequestRefund(t *testing.T) {
	f := newOrderFixture(t)

	t.Run("paid undelivered order is eligible", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		order, err := f.svc.RequestRefund(f.user.ID, paid.ID, "Wrong toppings")
		require.NoError(t, err)
		assert.True(t, order.RefundRequested)
		assert.Equal(t, "Wrong toppings", order.RefundReason)
		assert.NotNil(t, order.RefundRequestedAt)
	})

	t.Run("unpaid order refuses", func(t *testing.T) {
		draft, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
		require.NoError(t, err)
		_, err = f.svc.RequestRefund(f.user.ID, draft.OrderID, "reason")
		assert.ErrorIs(t, err, ErrRefundNotEligible)
	})

	t.Run("delivered order refuses", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		_, err := f.svc.UpdateStatus(context.Background(), paid.ID, models.StatusDelivered, "", true)
		require.NoError(t, err)
		_, err = f.svc.RequestRefund(f.user.ID, paid.ID, "reason")
		assert.ErrorIs(t, err, ErrRefundNotEligible)
	})
}

func TestRateOrder(t *testing.T) {
	f := newOrderFixture(t)

	t.Run("delivered order accepts a rating", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		_, err := f.svc.UpdateStatus(context.Background(), paid.ID, models.StatusDelivered, "", true)
		require.NoError(t, err)

		require.NoError(t, f.svc.RateOrder(f.user.ID, paid.ID, 5, "Great pizza"))

		var order models.Order
		require.NoError(t, f.db.First(&order, paid.ID).Error)
		require.NotNil(t, order.Rating)
		assert.Equal(t, 5, *order.Rating)
		assert.Equal(t, "Great pizza", order.Review)
		assert.NotNil(t, order.RatedAt)
	})

	t.Run("out-of-range rating rejected before status check", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		assert.ErrorIs(t, f.svc.RateOrder(f.user.ID, paid.ID, 0, ""), ErrInvalidRating)
		assert.ErrorIs(t, f.svc.RateOrder(f.user.ID, paid.ID, 6, ""), ErrInvalidRating)
	})

	t.Run("undelivered order refuses", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		assert.ErrorIs(t, f.svc.RateOrder(f.user.ID, paid.ID, 4, ""), ErrRatingNotEligible)
	})
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderFixture(t)

	t.Run("normal kitchen flow", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		for _, next := range []models.OrderStatus{
			models.StatusPreparing, models.StatusBaking, models.StatusReady,
			models.StatusOutForDelivery, models.StatusDelivered,
		} {
			order, err := f.svc.UpdateStatus(context.Background(), paid.ID, next, "", false)
			require.NoError(t, err, "transition to %s", next)
			assert.Equal(t, next, order.Status)
		}

		var order models.Order
		require.NoError(t, f.db.Preload("StatusHistory").First(&order, paid.ID).Error)
		assert.NotNil(t, order.ActualDeliveryTime)
		// pending + confirmed + five kitchen steps
		assert.Len(t, order.StatusHistory, 7)
		assert.Equal(t, []string{order.OrderRef}, f.notifier.delivered)
	})

	t.Run("illegal jump refuses", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		_, err := f.svc.UpdateStatus(context.Background(), paid.ID, models.StatusDelivered, "", false)
		assert.ErrorIs(t, err, ErrIllegalTransition)
	})

	t.Run("override bypasses the table and is flagged", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		order, err := f.svc.UpdateStatus(context.Background(), paid.ID, models.StatusReady, "Rush order", true)
		require.NoError(t, err)
		assert.Equal(t, models.StatusReady, order.Status)

		last := order.StatusHistory[len(order.StatusHistory)-1]
		assert.True(t, last.Manual)
		assert.Contains(t, last.Message, "manual override")
	})

	t.Run("default history message names the status", func(t *testing.T) {
		paid := f.placePaid(t, 1)
		order, err := f.svc.UpdateStatus(context.Background(), paid.ID, models.StatusPreparing, "", false)
		require.NoError(t, err)
		last := order.StatusHistory[len(order.StatusHistory)-1]
		assert.Equal(t, "Order status updated to preparing", last.Message)
	})
}

func TestListOrdersPagination(t *testing.T) {
	f := newOrderFixture(t)
	for i := 0; i < 5; i++ {
		_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
		require.NoError(t, err)
	}

	page, err := f.svc.GetUserOrders(f.user.ID, OrderListQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 2)
	assert.Equal(t, int64(5), page.Pagination.TotalOrders)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)
	assert.False(t, page.Pagination.HasPrevPage)

	last, err := f.svc.GetUserOrders(f.user.ID, OrderListQuery{Page: 3, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, last.Orders, 1)
	assert.False(t, last.Pagination.HasNextPage)
	assert.True(t, last.Pagination.HasPrevPage)

	filtered, err := f.svc.GetUserOrders(f.user.ID, OrderListQuery{Status: models.StatusCancelled})
	require.NoError(t, err)
	assert.Empty(t, filtered.Orders)
}

func TestDashboardOverview(t *testing.T) {
	f := newOrderFixture(t)
	f.placePaid(t, 2)
	_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	require.NoError(t, err)
	require.NoError(t, f.db.Model(&f.veggie).Update("stock", 2).Error)

	overview, err := f.svc.DashboardOverview()
	require.NoError(t, err)

	assert.Equal(t, int64(1), overview.TotalUsers)
	assert.Equal(t, int64(2), overview.TotalOrders)
	assert.Equal(t, int64(2), overview.TodaysOrders)
	assert.InDelta(t, 1066.00, overview.TotalRevenue, 0.001)
	assert.InDelta(t, 1066.00, overview.TodaysRevenue, 0.001)
	require.Len(t, overview.LowStockItems, 1)
	assert.Equal(t, "Olives", overview.LowStockItems[0].Name)
	assert.Len(t, overview.RecentOrders, 2)

	distribution := map[models.OrderStatus]int64{}
	for _, sc := range overview.StatusDistribution {
		distribution[sc.Status] = sc.Count
	}
	assert.Equal(t, int64(1), distribution[models.StatusConfirmed])
	assert.Equal(t, int64(1), distribution[models.StatusPending])
}

func TestStartOfDayUsesLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2026, 8, 29, 1, 15, 0, 0, ist)
	got := startOfDay(at)
	assert.Equal(t, time.Date(2026, 8, 29, 0, 0, 0, 0, ist), got)
}

func TestSalesAnalytics(t *testing.T) {
	f := newOrderFixture(t)

	f.placePaid(t, 2) // today, 1066.00
	old := f.placePaid(t, 1)
	require.NoError(t, f.db.Model(&models.Order{}).Where("id = ?", old.ID).
		Update("created_at", time.Now().AddDate(0, 0, -40)).Error)
	_, err := f.svc.CreatePaymentOrder(context.Background(), f.user.ID, f.cartRequest(1))
	require.NoError(t, err)

	t.Run("7d window excludes older orders", func(t *testing.T) {
		report, err := f.svc.SalesAnalytics("7d")
		require.NoError(t, err)
		assert.Equal(t, "7d", report.Period)

		require.Len(t, report.SalesByDay, 1)
		assert.InDelta(t, 1066.00, report.SalesByDay[0].Revenue, 0.001)
		assert.Equal(t, int64(1), report.SalesByDay[0].Orders)

		counts := map[string]int64{}
		for _, ing := range report.PopularIngredients {
			counts[ing.Name] = ing.Count
		}
		assert.Equal(t, int64(2), counts["Thin Crust"])
		assert.Equal(t, int64(2), counts["Olives"])

		breakdown := map[models.OrderStatus]int64{}
		for _, sc := range report.StatusBreakdown {
			breakdown[sc.Status] = sc.Count
		}
		assert.Equal(t, int64(1), breakdown[models.StatusConfirmed])
		assert.Equal(t, int64(1), breakdown[models.StatusPending])
	})

	t.Run("90d window spans both paid days", func(t *testing.T) {
		report, err := f.svc.SalesAnalytics("90d")
		require.NoError(t, err)

		require.Len(t, report.SalesByDay, 2)
		// Ascending by day: the backdated order comes first
		assert.InDelta(t, 533.00, report.SalesByDay[0].Revenue, 0.001)
		assert.InDelta(t, 1066.00, report.SalesByDay[1].Revenue, 0.001)

		counts := map[string]int64{}
		for _, ing := range report.PopularIngredients {
			counts[ing.Name] = ing.Count
		}
		assert.Equal(t, int64(3), counts["Mozzarella"])
	})

	t.Run("unknown period falls back to 30d", func(t *testing.T) {
		report, err := f.svc.SalesAnalytics("1y")
		require.NoError(t, err)
		assert.Equal(t, "30d", report.Period)
		require.Len(t, report.SalesByDay, 1)
	})
}
