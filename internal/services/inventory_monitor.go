package services

import (
	"sync"
	"time"

	"github.com/ovenfresh/pizza-order-api/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InventoryReport is one sweep's view of ingredients needing attention.
type InventoryReport struct {
	CheckedAt     time.Time           `json:"checked_at"`
	LowStockItems []models.Ingredient `json:"low_stock_items"`
	OutOfStock    []models.Ingredient `json:"out_of_stock_items"`
}

// Empty reports whether the sweep found nothing to alert on.
func (r *InventoryReport) Empty() bool {
	return len(r.LowStockItems) == 0 && len(r.OutOfStock) == 0
}

// MonitorStatus is the externally visible state of the monitor.
type MonitorStatus struct {
	Running         bool       `json:"running"`
	IntervalMinutes int        `json:"interval_minutes"`
	LastCheck       *time.Time `json:"last_check"`
}

// InventoryMonitor periodically sweeps ingredient stock, emails admins when
// anything is low or depleted, and keeps availability in sync with stock.
type InventoryMonitor struct {
	db       *gorm.DB
	users    UserService
	notifier Notifier
	interval time.Duration

	mu        sync.Mutex
	running   bool
	lastCheck *time.Time
	stop      chan struct{}
}

func NewInventoryMonitor(db *gorm.DB, users UserService, notifier Notifier, interval time.Duration) *InventoryMonitor {
	return &InventoryMonitor{
		db:       db,
		users:    users,
		notifier: notifier,
		interval: interval,
	}
}

// Start launches the background sweep loop. Calling Start on a running
// monitor is a no-op.
func (m *InventoryMonitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return
	}
	m.running = true
	m.stop = make(chan struct{})

	go m.loop(m.stop)
	log.WithField("interval", m.interval).Info("Inventory monitor started")
}

// Stop terminates the sweep loop.
func (m *InventoryMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	close(m.stop)
	m.running = false
	log.Info("Inventory monitor stopped")
}

func (m *InventoryMonitor) loop(stop chan struct{}) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	// One sweep on startup so a fresh deployment surfaces existing problems
	// without waiting a full interval.
	m.sweep()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-stop:
			return
		}
	}
}

func (m *InventoryMonitor) sweep() {
	report, err := m.CheckNow()
	if err != nil {
		log.WithError(err).Error("Inventory sweep failed")
		return
	}
	log.WithFields(log.Fields{
		"low_stock":    len(report.LowStockItems),
		"out_of_stock": len(report.OutOfStock),
	}).Info("Inventory sweep completed")
}

// CheckNow runs a single sweep immediately and returns its report.
func (m *InventoryMonitor) CheckNow() (*InventoryReport, error) {
	report := &InventoryReport{CheckedAt: time.Now()}

	err := m.db.Where("is_active = ? AND stock <= threshold AND stock > 0", true).
		Order("stock asc").Find(&report.LowStockItems).Error
	if err != nil {
		return nil, err
	}
	err = m.db.Where("is_active = ? AND stock = 0", true).
		Order("name asc").Find(&report.OutOfStock).Error
	if err != nil {
		return nil, err
	}

	// Depleted ingredients must not be orderable. The predicate makes the
	// write idempotent across sweeps.
	err = m.db.Model(&models.Ingredient{}).
		Where("stock = 0 AND is_available = ?", true).
		Update("is_available", false).Error
	if err != nil {
		return nil, err
	}

	if !report.Empty() {
		recipients, err := m.users.AdminEmails()
		if err != nil {
			log.WithError(err).Warn("Failed to resolve admin recipients for stock alert")
		} else if len(recipients) > 0 {
			if err := m.notifier.SendStockAlert(report, recipients); err != nil {
				log.WithError(err).Warn("Failed to send stock alert email")
			}
		}
	}

	m.mu.Lock()
	m.lastCheck = &report.CheckedAt
	m.mu.Unlock()
	return report, nil
}

func (m *InventoryMonitor) Status() MonitorStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return MonitorStatus{
		Running:         m.running,
		IntervalMinutes: int(m.interval / time.Minute),
		LastCheck:       m.lastCheck,
	}
}
