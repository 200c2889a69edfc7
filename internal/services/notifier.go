package services

import "github.com/ovenfresh/pizza-order-api/internal/models"

// Notifier dispatches transactional email. Every send is best-effort: callers
// log failures and never roll back the state change that triggered the send.
type Notifier interface {
	SendWelcome(user *models.User, verificationURL string) error
	SendPasswordReset(user *models.User, resetURL string) error
	SendOrderConfirmation(order *models.Order, user *models.User) error
	SendOrderStatusUpdate(order *models.Order, user *models.User, message string) error
	SendOrderDelivered(order *models.Order, user *models.User) error
	SendStockAlert(report *InventoryReport, recipients []string) error
}
