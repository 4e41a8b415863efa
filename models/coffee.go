package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Coffee struct {
	ID                   uint                  `gorm:"primaryKey" json:"id"`
	Name                 string                `gorm:"type:varchar(255);not null" json:"name"`
	Price                decimal.Decimal       `gorm:"type:decimal(10,2);not null" json:"price"`
	Description          string                `gorm:"type:text" json:"description"`
	ImageUrl             string                `gorm:"type:varchar(512)" json:"imageUrl"`
	Capacities           []Capacity            `gorm:"many2many:coffee_capacities" json:"capacities"`
	Milks                []Milk                `gorm:"many2many:coffee_milks" json:"milks"`
	NonDairyAlternatives []NonDairyAlternative `gorm:"many2many:coffee_non_dairy_alternatives" json:"nonDairyAlternatives"`
	Sauces               []Sauce               `gorm:"many2many:coffee_sauces" json:"sauces"`
	Toppings             []Topping             `gorm:"many2many:coffee_toppings" json:"toppings"`
	CreatedAt            time.Time             `json:"createdAt"`
	UpdatedAt            time.Time             `json:"updatedAt"`
}

// CoffeeAssociations lists the add-on relations preloaded with a coffee.
var CoffeeAssociations = []string{"Capacities", "Milks", "NonDairyAlternatives", "Sauces", "Toppings"}
