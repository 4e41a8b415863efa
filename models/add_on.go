package models

import "github.com/shopspring/decimal"

// AddOnOption is the shape shared by every add-on table. Price is the
// surcharge added to the coffee's base price.
type AddOnOption struct {
	ID    uint            `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"type:varchar(100);unique;not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
}

type Capacity struct {
	AddOnOption
}

type Milk struct {
	AddOnOption
}

type NonDairyAlternative struct {
	AddOnOption
}

type Sauce struct {
	AddOnOption
}

type Topping struct {
	AddOnOption
}

// Join rows between a coffee and the add-ons it offers.

type CoffeeCapacity struct {
	CoffeeID   uint `gorm:"primaryKey;autoIncrement:false"`
	CapacityID uint `gorm:"primaryKey;autoIncrement:false"`
}

type CoffeeMilk struct {
	CoffeeID uint `gorm:"primaryKey;autoIncrement:false"`
	MilkID   uint `gorm:"primaryKey;autoIncrement:false"`
}

type CoffeeNonDairyAlternative struct {
	CoffeeID              uint `gorm:"primaryKey;autoIncrement:false"`
	NonDairyAlternativeID uint `gorm:"primaryKey;autoIncrement:false"`
}

type CoffeeSauce struct {
	CoffeeID uint `gorm:"primaryKey;autoIncrement:false"`
	SauceID  uint `gorm:"primaryKey;autoIncrement:false"`
}

type CoffeeTopping struct {
	CoffeeID  uint `gorm:"primaryKey;autoIncrement:false"`
	ToppingID uint `gorm:"primaryKey;autoIncrement:false"`
}

// AddOnSelection is the set of optional add-on ids chosen for one cart or order line.
type AddOnSelection struct {
	CapacityID            *uint `json:"capacityId"`
	MilkID                *uint `json:"milkId"`
	NonDairyAlternativeID *uint `json:"nonDairyAlternativeId"`
	SauceID               *uint `json:"sauceId"`
	ToppingID             *uint `json:"toppingId"`
}

// Equal reports whether both selections pick the same options.
func (s AddOnSelection) Equal(o AddOnSelection) bool {
	return sameID(s.CapacityID, o.CapacityID) &&
		sameID(s.MilkID, o.MilkID) &&
		sameID(s.NonDairyAlternativeID, o.NonDairyAlternativeID) &&
		sameID(s.SauceID, o.SauceID) &&
		sameID(s.ToppingID, o.ToppingID)
}

func sameID(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// AddOnCatalog groups every available add-on option, used to populate the new-coffee form.
type AddOnCatalog struct {
	Capacities           []Capacity            `json:"capacities"`
	Milks                []Milk                `json:"milks"`
	NonDairyAlternatives []NonDairyAlternative `json:"nonDairyAlternatives"`
	Sauces               []Sauce               `json:"sauces"`
	Toppings             []Topping             `json:"toppings"`
}

func (c AddOnCatalog) IsEmpty() bool {
	return len(c.Capacities) == 0 && len(c.Milks) == 0 && len(c.NonDairyAlternatives) == 0 &&
		len(c.Sauces) == 0 && len(c.Toppings) == 0
}
