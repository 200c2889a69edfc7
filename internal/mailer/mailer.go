package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/ovenfresh/pizza-order-api/internal/models"
	"github.com/ovenfresh/pizza-order-api/internal/services"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings for the transactional mailer.
type Config struct {
	Enabled  bool
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Mailer sends transactional email over SMTP. When disabled it logs each
// message instead of dialing out, which keeps local development quiet.
type Mailer struct {
	cfg    Config
	dialer *gomail.Dialer
}

var _ services.Notifier = (*Mailer)(nil)

func New(cfg Config) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Enabled {
		m.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return m
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.cfg.Enabled {
		log.WithFields(log.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email sending disabled, skipping message")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.From, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending email to %s: %w", to, err)
	}
	return nil
}

func (m *Mailer) sendMany(recipients []string, subject, body string) error {
	var firstErr error
	for _, to := range recipients {
		if err := m.send(to, subject, body); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering email template: %w", err)
	}
	return buf.String(), nil
}

func (m *Mailer) SendWelcome(user *models.User, verificationURL string) error {
	body, err := render(welcomeTmpl, map[string]interface{}{
		"Name":            user.Name,
		"VerificationURL": verificationURL,
	})
	if err != nil {
		return err
	}
	return m.send(user.Email, "Welcome to Oven Fresh", body)
}

func (m *Mailer) SendPasswordReset(user *models.User, resetURL string) error {
	body, err := render(passwordResetTmpl, map[string]interface{}{
		"Name":     user.Name,
		"ResetURL": resetURL,
	})
	if err != nil {
		return err
	}
	return m.send(user.Email, "Reset your password", body)
}

func (m *Mailer) SendOrderConfirmation(order *models.Order, user *models.User) error {
	body, err := render(orderConfirmationTmpl, map[string]interface{}{
		"Name":              user.Name,
		"Order":             order,
		"EstimatedDelivery": order.EstimatedDeliveryTime,
	})
	if err != nil {
		return err
	}
	return m.send(user.Email, fmt.Sprintf("Order %s confirmed", order.OrderRef), body)
}

func (m *Mailer) SendOrderStatusUpdate(order *models.Order, user *models.User, message string) error {
	body, err := render(statusUpdateTmpl, map[string]interface{}{
		"Name":    user.Name,
		"Order":   order,
		"Message": message,
	})
	if err != nil {
		return err
	}
	return m.send(user.Email, fmt.Sprintf("Update on order %s", order.OrderRef), body)
}

func (m *Mailer) SendOrderDelivered(order *models.Order, user *models.User) error {
	body, err := render(deliveredTmpl, map[string]interface{}{
		"Name":  user.Name,
		"Order": order,
	})
	if err != nil {
		return err
	}
	return m.send(user.Email, fmt.Sprintf("Order %s delivered, enjoy!", order.OrderRef), body)
}

func (m *Mailer) SendStockAlert(report *services.InventoryReport, recipients []string) error {
	body, err := render(stockAlertTmpl, report)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("Inventory alert: %d low, %d out of stock",
		len(report.LowStockItems), len(report.OutOfStock))
	return m.sendMany(recipients, subject, body)
}
