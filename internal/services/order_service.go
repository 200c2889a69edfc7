package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/ovenfresh/pizza-order-api/internal/cache"
	"github.com/ovenfresh/pizza-order-api/internal/events"
	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/payment"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PaymentGateway is the slice of the gateway client the order flow needs.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amountPaisa int64, currency, receipt string, notes map[string]string) (*payment.GatewayOrder, error)
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
	KeyID() string
}

// EventPublisher emits order lifecycle events to the event stream.
type EventPublisher interface {
	PublishStatusChange(ctx context.Context, ev events.OrderEvent) error
}

// OrderItemRequest selects the ingredients and customizations of one pizza.
type OrderItemRequest struct {
	BaseID              uint             `json:"base_id" binding:"required"`
	SauceID             uint             `json:"sauce_id" binding:"required"`
	CheeseID            uint             `json:"cheese_id" binding:"required"`
	VeggieIDs           []uint           `json:"veggie_ids"`
	MeatIDs             []uint           `json:"meat_ids"`
	Quantity            int              `json:"quantity" binding:"required,min=1,max=10"`
	Size                models.PizzaSize `json:"size" binding:"required"`
	CrustType           models.CrustType `json:"crust_type"`
	SpecialInstructions string           `json:"special_instructions" binding:"max=500"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items                []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress      models.Address     `json:"delivery_address" binding:"required"`
	DeliveryInstructions string             `json:"delivery_instructions" binding:"max=500"`
}

// PaymentOrderDraft is returned to the client to drive the checkout widget.
type PaymentOrderDraft struct {
	OrderID        uint    `json:"order_id"`
	OrderRef       string  `json:"order_ref"`
	GatewayOrderID string  `json:"gateway_order_id"`
	AmountPaisa    int64   `json:"amount"`
	TotalAmount    float64 `json:"total_amount"`
	Currency       string  `json:"currency"`
	KeyID          string  `json:"key_id"`
}

// VerifyPaymentRequest is the gateway callback payload.
type VerifyPaymentRequest struct {
	GatewayOrderID   string `json:"gateway_order_id" binding:"required"`
	GatewayPaymentID string `json:"gateway_payment_id" binding:"required"`
	Signature        string `json:"signature" binding:"required"`
}

// OrderListQuery filters and paginates order listings.
type OrderListQuery struct {
	Page   int
	Limit  int
	Status models.OrderStatus
	UserID uint
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalOrders int64 `json:"total_orders"`
	HasNextPage bool  `json:"has_next_page"`
	HasPrevPage bool  `json:"has_prev_page"`
}

// OrderPage is a page of orders plus pagination metadata.
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}

// StatusCount is one bucket of the order status distribution.
type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// DashboardOverview aggregates the admin landing-page numbers.
type DashboardOverview struct {
	TotalUsers         int64               `json:"total_users"`
	TotalOrders        int64               `json:"total_orders"`
	TodaysOrders       int64               `json:"todays_orders"`
	TotalRevenue       float64             `json:"total_revenue"`
	TodaysRevenue      float64             `json:"todays_revenue"`
	StatusDistribution []StatusCount       `json:"order_status_distribution"`
	LowStockItems      []models.Ingredient `json:"low_stock_items"`
	RecentOrders       []models.Order      `json:"recent_orders"`
}

// DailySales is revenue and order count for one calendar day.
type DailySales struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

// IngredientCount ranks one snapshotted ingredient name by how many pizzas
// used it.
type IngredientCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// SalesAnalytics is the period-filtered sales report for the back office.
type SalesAnalytics struct {
	Period             string            `json:"period"`
	SalesByDay         []DailySales      `json:"sales_by_day"`
	PopularIngredients []IngredientCount `json:"popular_ingredients"`
	StatusBreakdown    []StatusCount     `json:"status_breakdown"`
}

// OrderService implements checkout, payment verification and the order
// lifecycle.
type OrderService interface {
	CreatePaymentOrder(ctx context.Context, userID uint, req CreateOrderRequest) (*PaymentOrderDraft, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*models.Order, error)
	GetUserOrders(userID uint, q OrderListQuery) (*OrderPage, error)
	GetUserOrder(userID, orderID uint) (*models.Order, error)
	CancelOrder(userID, orderID uint, reason string) (*models.Order, error)
	RequestRefund(userID, orderID uint, reason string) (*models.Order, error)
	RateOrder(userID, orderID uint, rating int, review string) error
	ListOrders(q OrderListQuery) (*OrderPage, error)
	UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus, note string, override bool) (*models.Order, error)
	DashboardOverview() (*DashboardOverview, error)
	SalesAnalytics(period string) (*SalesAnalytics, error)
}

type orderService struct {
	db          *gorm.DB
	gateway     PaymentGateway
	notifier    Notifier
	markers     *cache.Markers
	publisher   EventPublisher
	currency    string
	newOrderRef func(time.Time) string
}

// NewOrderService creates a new instance of OrderService. markers and
// publisher are optional; nil disables the corresponding integration.
func NewOrderService(db *gorm.DB, gateway PaymentGateway, notifier Notifier, markers *cache.Markers, publisher EventPublisher, currency string) OrderService {
	return &orderService{
		db:          db,
		gateway:     gateway,
		notifier:    notifier,
		markers:     markers,
		publisher:   publisher,
		currency:    currency,
		newOrderRef: models.NewOrderRef,
	}
}

// maxOrderRefAttempts bounds the regeneration loop when a generated order
// reference collides with an existing one.
const maxOrderRefAttempts = 5

// isDuplicateKey matches the unique-violation wording of the supported
// drivers (sqlite and postgres).
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// snapshotItem resolves and prices one requested pizza. Every lookup failure
// aborts the whole checkout before any persistence or gateway call.
func (s *orderService) snapshotItem(req OrderItemRequest) (models.OrderItem, error) {
	if !req.Size.Valid() {
		return models.OrderItem{}, fmt.Errorf("%w: unknown size %q", ErrIngredientNotFound, req.Size)
	}
	crust := req.CrustType
	if crust == "" {
		crust = models.CrustThin
	}
	if !crust.Valid() {
		return models.OrderItem{}, fmt.Errorf("%w: unknown crust type %q", ErrIngredientNotFound, crust)
	}

	base, err := s.activeIngredient(models.CategoryBase, req.BaseID)
	if err != nil {
		return models.OrderItem{}, err
	}
	sauce, err := s.activeIngredient(models.CategorySauce, req.SauceID)
	if err != nil {
		return models.OrderItem{}, err
	}
	cheese, err := s.activeIngredient(models.CategoryCheese, req.CheeseID)
	if err != nil {
		return models.OrderItem{}, err
	}

	// Stock sufficiency for the core ingredients gates the whole request.
	for _, ing := range []models.Ingredient{base, sauce, cheese} {
		if ing.Stock < req.Quantity {
			return models.OrderItem{}, fmt.Errorf("%w: %s (available %d)", ErrInsufficientStock, ing.Name, ing.Stock)
		}
	}

	var toppings []models.Ingredient
	for _, id := range req.VeggieIDs {
		v, err := s.activeIngredient(models.CategoryVeggie, id)
		if err != nil {
			return models.OrderItem{}, err
		}
		toppings = append(toppings, v)
	}
	for _, id := range req.MeatIDs {
		m, err := s.activeIngredient(models.CategoryMeat, id)
		if err != nil {
			return models.OrderItem{}, err
		}
		toppings = append(toppings, m)
	}

	item := models.OrderItem{
		BaseID:      base.ID,
		BaseName:    base.Name,
		BasePrice:   base.Price,
		SauceID:     sauce.ID,
		SauceName:   sauce.Name,
		SaucePrice:  sauce.Price,
		CheeseID:    cheese.ID,
		CheeseName:  cheese.Name,
		CheesePrice: cheese.Price,

		Quantity:            req.Quantity,
		Size:                req.Size,
		CrustType:           crust,
		SpecialInstructions: req.SpecialInstructions,
		LinePrice:           LinePrice(base, sauce, cheese, toppings, req.Size, req.Quantity),
	}
	for _, t := range toppings {
		item.Toppings = append(item.Toppings, models.OrderItemTopping{
			IngredientID: t.ID,
			Category:     t.Category,
			Name:         t.Name,
			Price:        t.Price,
		})
	}
	return item, nil
}

func (s *orderService) activeIngredient(category models.IngredientCategory, id uint) (models.Ingredient, error) {
	var ing models.Ingredient
	err := s.db.Where("category = ? AND id = ? AND is_active = ?", category, id, true).First(&ing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Ingredient{}, fmt.Errorf("%w: %s %d", ErrIngredientNotFound, category, id)
	}
	if err != nil {
		return models.Ingredient{}, err
	}
	return ing, nil
}

func (s *orderService) CreatePaymentOrder(ctx context.Context, userID uint, req CreateOrderRequest) (*PaymentOrderDraft, error) {
	var (
		items []models.OrderItem
		total float64
	)
	for _, itemReq := range req.Items {
		item, err := s.snapshotItem(itemReq)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		total += item.LinePrice
	}
	total = math.Round(total*100) / 100
	amountPaisa := ToPaisa(total)

	now := time.Now()
	receipt := fmt.Sprintf("order_%d_%d", now.Unix(), userID)
	gatewayOrder, err := s.gateway.CreateOrder(ctx, amountPaisa, s.currency, receipt, map[string]string{
		"user_id":    fmt.Sprintf("%d", userID),
		"item_count": fmt.Sprintf("%d", len(req.Items)),
	})
	if err != nil {
		return nil, err
	}

	estimated := now.Add(45 * time.Minute)
	order := models.Order{
		UserID:                userID,
		Items:                 items,
		TotalAmount:           total,
		AmountPaisa:           amountPaisa,
		Currency:              s.currency,
		Status:                models.StatusPending,
		PaymentStatus:         models.PaymentPending,
		GatewayOrderID:        gatewayOrder.ID,
		DeliveryAddress:       req.DeliveryAddress,
		DeliveryInstructions:  req.DeliveryInstructions,
		EstimatedDeliveryTime: &estimated,
		StatusHistory: []models.OrderStatusEvent{
			{Status: models.StatusPending, Message: "Order placed, awaiting payment"},
		},
	}
	// The reference is random, so a collision with an existing order is
	// possible; regenerate and retry instead of surfacing the constraint
	// error for a valid cart.
	for attempt := 1; ; attempt++ {
		order.OrderRef = s.newOrderRef(now)
		createErr := s.db.Create(&order).Error
		if createErr == nil {
			break
		}
		if !isDuplicateKey(createErr) || attempt >= maxOrderRefAttempts {
			return nil, createErr
		}
		log.WithFields(log.Fields{
			"order_ref": order.OrderRef,
			"attempt":   attempt,
		}).Warn("Order reference collision, regenerating")
	}

	log.WithFields(log.Fields{
		"order_ref":        order.OrderRef,
		"gateway_order_id": gatewayOrder.ID,
		"amount_paisa":     amountPaisa,
	}).Info("Payment order created")

	return &PaymentOrderDraft{
		OrderID:        order.ID,
		OrderRef:       order.OrderRef,
		GatewayOrderID: gatewayOrder.ID,
		AmountPaisa:    amountPaisa,
		TotalAmount:    total,
		Currency:       s.currency,
		KeyID:          s.gateway.KeyID(),
	}, nil
}

func (s *orderService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*models.Order, error) {
	if !s.gateway.VerifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		return nil, ErrSignatureMismatch
	}

	// A replayed callback for an already-verified intent is a no-op success.
	markerKey := cache.PaymentVerifiedKey(req.GatewayOrderID)
	if s.markers != nil {
		seen, err := s.markers.Exists(ctx, markerKey)
		if err != nil {
			log.WithError(err).Warn("Idempotency marker lookup failed, falling back to database check")
		} else if seen {
			return s.loadByGatewayOrderID(req.GatewayOrderID)
		}
	}

	order, err := s.loadByGatewayOrderID(req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == models.PaymentPaid {
		return order, nil
	}

	if err := s.settlePayment(order, req.GatewayPaymentID); err != nil {
		if errors.Is(err, errPaymentAlreadySettled) {
			return s.loadByGatewayOrderID(req.GatewayOrderID)
		}
		return nil, err
	}

	if s.markers != nil {
		if err := s.markers.Set(ctx, markerKey); err != nil {
			log.WithError(err).Warn("Failed to record idempotency marker")
		}
	}
	s.publishStatusChange(ctx, order.OrderRef, models.StatusPending, models.StatusConfirmed)

	confirmed, err := s.loadByGatewayOrderID(req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if confirmed.User != nil {
		if err := s.notifier.SendOrderConfirmation(confirmed, confirmed.User); err != nil {
			log.WithError(err).WithField("order_ref", confirmed.OrderRef).Warn("Failed to send order confirmation email")
		}
	}
	return confirmed, nil
}

// errPaymentAlreadySettled signals that another callback settled the order
// between the pre-check and the transaction.
var errPaymentAlreadySettled = errors.New("payment already settled")

// settlePayment confirms the order and decrements stock atomically. The
// payment flip is conditional on the pending state so two concurrent
// callbacks for the same intent can never both decrement stock.
func (s *orderService) settlePayment(order *models.Order, gatewayPaymentID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_status = ?", order.ID, models.PaymentPending).
			Updates(map[string]interface{}{
				"payment_status":     models.PaymentPaid,
				"status":             models.StatusConfirmed,
				"gateway_payment_id": gatewayPaymentID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errPaymentAlreadySettled
		}
		if err := tx.Create(&models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  models.StatusConfirmed,
			Message: "Payment verified, order confirmed",
		}).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			for _, ingredientID := range []uint{item.BaseID, item.SauceID, item.CheeseID} {
				if err := decrementStock(tx, ingredientID, item.Quantity); err != nil {
					return err
				}
			}
			for _, topping := range item.Toppings {
				if err := decrementStock(tx, topping.IngredientID, item.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (s *orderService) loadByGatewayOrderID(gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Toppings").Preload("StatusHistory").Preload("User").
		Where("gateway_order_id = ?", gatewayOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) loadUserOrder(userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Toppings").Preload("StatusHistory").
		Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *orderService) GetUserOrders(userID uint, q OrderListQuery) (*OrderPage, error) {
	q.UserID = userID
	return s.listOrders(q)
}

func (s *orderService) GetUserOrder(userID, orderID uint) (*models.Order, error) {
	return s.loadUserOrder(userID, orderID)
}

func (s *orderService) ListOrders(q OrderListQuery) (*OrderPage, error) {
	return s.listOrders(q)
}

func (s *orderService) listOrders(q OrderListQuery) (*OrderPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	query := s.db.Model(&models.Order{})
	if q.UserID != 0 {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var orders []models.Order
	err := query.Preload("Items.Toppings").Preload("User").
		Order("created_at desc").
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(q.Limit)))
	return &OrderPage{
		Orders: orders,
		Pagination: Pagination{
			CurrentPage: q.Page,
			TotalPages:  totalPages,
			TotalOrders: total,
			HasNextPage: q.Page < totalPages,
			HasPrevPage: q.Page > 1,
		},
	}, nil
}

func (s *orderService) CancelOrder(userID, orderID uint, reason string) (*models.Order, error) {
	order, err := s.loadUserOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() {
		return nil, ErrNotCancellable
	}

	message := reason
	if message == "" {
		message = "Order cancelled by customer"
	}
	oldStatus := order.Status
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  models.StatusCancelled,
			Message: message,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(context.Background(), order.OrderRef, oldStatus, models.StatusCancelled)
	return s.loadUserOrder(userID, orderID)
}

func (s *orderService) RequestRefund(userID, orderID uint, reason string) (*models.Order, error) {
	order, err := s.loadUserOrder(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus != models.PaymentPaid || order.Status == models.StatusDelivered {
		return nil, ErrRefundNotEligible
	}

	now := time.Now()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).Updates(map[string]interface{}{
			"refund_requested":    true,
			"refund_reason":       reason,
			"refund_requested_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  order.Status,
			Message: "Refund requested by customer",
		}).Error
	})
	if err != nil {
		return nil, err
	}

	// Gateway refund submission stays a manual back-office step.
	log.WithFields(log.Fields{
		"order_ref": order.OrderRef,
		"reason":    reason,
	}).Info("Refund requested")
	return s.loadUserOrder(userID, orderID)
}

func (s *orderService) RateOrder(userID, orderID uint, rating int, review string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	order, err := s.loadUserOrder(userID, orderID)
	if err != nil {
		return err
	}
	if order.Status != models.StatusDelivered {
		return ErrRatingNotEligible
	}

	now := time.Now()
	return s.db.Model(order).Updates(map[string]interface{}{
		"rating":   rating,
		"review":   review,
		"rated_at": now,
	}).Error
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, status models.OrderStatus, note string, override bool) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Toppings").Preload("StatusHistory").Preload("User").
		First(&order, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status
	if oldStatus != status && !override && !oldStatus.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, oldStatus, status)
	}

	message := note
	if message == "" {
		message = fmt.Sprintf("Order status updated to %s", status)
	} else if override {
		message = fmt.Sprintf("%s (manual override)", note)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": status}
		if status == models.StatusDelivered && oldStatus != models.StatusDelivered {
			updates["actual_delivery_time"] = time.Now()
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(&models.OrderStatusEvent{
			OrderID: order.ID,
			Status:  status,
			Message: message,
			Manual:  override,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if oldStatus != status {
		s.publishStatusChange(ctx, order.OrderRef, oldStatus, status)
		if order.User != nil {
			var notifyErr error
			if status == models.StatusDelivered {
				notifyErr = s.notifier.SendOrderDelivered(&order, order.User)
			} else {
				notifyErr = s.notifier.SendOrderStatusUpdate(&order, order.User, message)
			}
			if notifyErr != nil {
				log.WithError(notifyErr).WithField("order_ref", order.OrderRef).Warn("Failed to send order status email")
			}
		}
	}

	var updated models.Order
	if err := s.db.Preload("Items.Toppings").Preload("StatusHistory").Preload("User").First(&updated, orderID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *orderService) publishStatusChange(ctx context.Context, orderRef string, oldStatus, newStatus models.OrderStatus) {
	if s.publisher == nil {
		return
	}
	ev := events.OrderEvent{
		OrderRef:  orderRef,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		At:        time.Now(),
	}
	if err := s.publisher.PublishStatusChange(ctx, ev); err != nil {
		log.WithError(err).WithField("order_ref", orderRef).Warn("Failed to publish order event")
	}
}

// startOfDay is midnight in t's own location. Truncating to 24h would give
// UTC midnight and misattribute orders around it in non-UTC deployments.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *orderService) DashboardOverview() (*DashboardOverview, error) {
	overview := &DashboardOverview{}

	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&overview.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Order{}).Count(&overview.TotalOrders).Error; err != nil {
		return nil, err
	}

	today := startOfDay(time.Now())
	if err := s.db.Model(&models.Order{}).Where("created_at >= ?", today).Count(&overview.TodaysOrders).Error; err != nil {
		return nil, err
	}

	row := s.db.Model(&models.Order{}).Where("payment_status = ?", models.PaymentPaid).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&overview.TotalRevenue); err != nil {
		return nil, err
	}
	row = s.db.Model(&models.Order{}).Where("payment_status = ? AND created_at >= ?", models.PaymentPaid, today).
		Select("COALESCE(SUM(total_amount), 0)").Row()
	if err := row.Scan(&overview.TodaysRevenue); err != nil {
		return nil, err
	}

	rows, err := s.db.Model(&models.Order{}).
		Select("status, COUNT(*) as count").Group("status").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		overview.StatusDistribution = append(overview.StatusDistribution, sc)
	}

	if err := s.db.Where("is_active = ? AND stock <= threshold", true).
		Order("stock asc").Find(&overview.LowStockItems).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").Order("created_at desc").Limit(10).
		Find(&overview.RecentOrders).Error; err != nil {
		return nil, err
	}

	return overview, nil
}

// analyticsPeriods maps the supported period values to their window length.
var analyticsPeriods = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

func (s *orderService) SalesAnalytics(period string) (*SalesAnalytics, error) {
	window, ok := analyticsPeriods[period]
	if !ok {
		period = "30d"
		window = analyticsPeriods[period]
	}
	since := time.Now().Add(-window)

	// The daily series and the ingredient ranking are bucketed in Go from
	// the snapshotted line items, so the grouping behaves identically on
	// sqlite and postgres.
	var paid []models.Order
	if err := s.db.Preload("Items.Toppings").
		Where("payment_status = ? AND created_at >= ?", models.PaymentPaid, since).
		Find(&paid).Error; err != nil {
		return nil, err
	}

	byDay := map[string]*DailySales{}
	byIngredient := map[string]int64{}
	for i := range paid {
		o := &paid[i]
		day := o.CreatedAt.Format("2006-01-02")
		bucket := byDay[day]
		if bucket == nil {
			bucket = &DailySales{Day: day}
			byDay[day] = bucket
		}
		bucket.Revenue = math.Round((bucket.Revenue+o.TotalAmount)*100) / 100
		bucket.Orders++
		for _, item := range o.Items {
			for _, name := range []string{item.BaseName, item.SauceName, item.CheeseName} {
				byIngredient[name] += int64(item.Quantity)
			}
			for _, topping := range item.Toppings {
				byIngredient[topping.Name] += int64(item.Quantity)
			}
		}
	}

	report := &SalesAnalytics{Period: period}
	for _, bucket := range byDay {
		report.SalesByDay = append(report.SalesByDay, *bucket)
	}
	sort.Slice(report.SalesByDay, func(i, j int) bool {
		return report.SalesByDay[i].Day < report.SalesByDay[j].Day
	})
	for name, count := range byIngredient {
		report.PopularIngredients = append(report.PopularIngredients, IngredientCount{Name: name, Count: count})
	}
	sort.Slice(report.PopularIngredients, func(i, j int) bool {
		a, b := report.PopularIngredients[i], report.PopularIngredients[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(report.PopularIngredients) > 10 {
		report.PopularIngredients = report.PopularIngredients[:10]
	}

	// The status breakdown spans every order in the window, paid or not.
	rows, err := s.db.Model(&models.Order{}).
		Where("created_at >= ?", since).
		Select("status, COUNT(*) as count").Group("status").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		report.StatusBreakdown = append(report.StatusBreakdown, sc)
	}
	return report, nil
}
