package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaxCartQuantity bounds the quantity of a single cart line so totals stay
// within the decimal(10,2) price columns.
const MaxCartQuantity = 999

type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`
	CartItems []CartItem `gorm:"foreignKey:CartID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"cartItems"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type CartItem struct {
	ID                    uint                 `gorm:"primaryKey" json:"id"`
	CartID                uint                 `gorm:"not null;index" json:"cartId"`
	CoffeeID              uint                 `gorm:"not null" json:"coffeeId"`
	Coffee                *Coffee              `gorm:"foreignKey:CoffeeID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"coffee,omitempty"`
	CapacityID            *uint                `json:"capacityId"`
	Capacity              *Capacity            `json:"capacity,omitempty"`
	MilkID                *uint                `json:"milkId"`
	Milk                  *Milk                `json:"milk,omitempty"`
	NonDairyAlternativeID *uint                `json:"nonDairyAlternativeId"`
	NonDairyAlternative   *NonDairyAlternative `json:"nonDairyAlternative,omitempty"`
	SauceID               *uint                `json:"sauceId"`
	Sauce                 *Sauce               `json:"sauce,omitempty"`
	ToppingID             *uint                `json:"toppingId"`
	Topping               *Topping             `json:"topping,omitempty"`
	Quantity              int                  `gorm:"not null" json:"quantity"`
	UnitPrice             decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice            decimal.Decimal      `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	CreatedAt             time.Time            `json:"createdAt"`
	UpdatedAt             time.Time            `json:"updatedAt"`
}

// CartItemAssociations lists the relations preloaded with a cart item.
var CartItemAssociations = []string{"Coffee", "Capacity", "Milk", "NonDairyAlternative", "Sauce", "Topping"}

func (i CartItem) Selection() AddOnSelection {
	return AddOnSelection{
		CapacityID:            i.CapacityID,
		MilkID:                i.MilkID,
		NonDairyAlternativeID: i.NonDairyAlternativeID,
		SauceID:               i.SauceID,
		ToppingID:             i.ToppingID,
	}
}

// SetQuantity updates the quantity and the derived total.
func (i *CartItem) SetQuantity(quantity int) {
	i.Quantity = quantity
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
