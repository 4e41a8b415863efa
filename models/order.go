package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order detail statuses.
const (
	StatusPending    = "Pending"
	StatusInProgress = "InProgress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

// OrderStatuses are all statuses an order detail may be set to.
var OrderStatuses = []string{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

// TerminalStatuses mark orders that are no longer active.
var TerminalStatuses = []string{StatusCompleted, StatusCancelled}

type Order struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;index" json:"userId"`
	Status       string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalAmount"`
	OrderDetails []OrderDetail   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orderDetails"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// OrderDetail is a snapshot of one cart item taken at checkout.
type OrderDetail struct {
	ID                    uint               `gorm:"primaryKey" json:"id"`
	OrderID               uint               `gorm:"not null;index" json:"orderId"`
	CoffeeID              uint               `gorm:"not null" json:"coffeeId"`
	CoffeeName            string             `gorm:"type:varchar(255);not null" json:"coffeeName"`
	CapacityID            *uint              `json:"capacityId"`
	MilkID                *uint              `json:"milkId"`
	NonDairyAlternativeID *uint              `json:"nonDairyAlternativeId"`
	SauceID               *uint              `json:"sauceId"`
	ToppingID             *uint              `json:"toppingId"`
	Quantity              int                `gorm:"not null" json:"quantity"`
	UnitPrice             decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice            decimal.Decimal    `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	OrderDetailStatus     *OrderDetailStatus `gorm:"foreignKey:OrderDetailID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orderDetailStatus"`
	CreatedAt             time.Time          `json:"createdAt"`
}

type OrderDetailStatus struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderDetailID uint      `gorm:"uniqueIndex;not null" json:"orderDetailId"`
	Status        string    `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	UpdatedByID   *uint     `json:"updatedById,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// IsOrderStatus reports whether s is a known order detail status.
func IsOrderStatus(s string) bool {
	for _, st := range OrderStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// AggregateStatus derives an order's status from its detail statuses.
func AggregateStatus(statuses []string) string {
	if len(statuses) == 0 {
		return StatusPending
	}

	var pending, cancelled, completed int
	for _, s := range statuses {
		switch s {
		case StatusPending:
			pending++
		case StatusCancelled:
			cancelled++
		case StatusCompleted:
			completed++
		}
	}

	switch {
	case cancelled == len(statuses):
		return StatusCancelled
	case completed > 0 && completed+cancelled == len(statuses):
		return StatusCompleted
	case pending == len(statuses):
		return StatusPending
	default:
		return StatusInProgress
	}
}

// DetailStatuses collects the current status of each detail.
func (o Order) DetailStatuses() []string {
	statuses := make([]string, 0, len(o.OrderDetails))
	for _, d := range o.OrderDetails {
		if d.OrderDetailStatus == nil {
			statuses = append(statuses, StatusPending)
			continue
		}
		statuses = append(statuses, d.OrderDetailStatus.Status)
	}
	return statuses
}
