package database

import (
	"fmt"

	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/utils"
	"gorm.io/gorm"
)

type joinTable struct {
	field string
	model any
}

var coffeeJoinTables = []joinTable{
	{"Capacities", &models.CoffeeCapacity{}},
	{"Milks", &models.CoffeeMilk{}},
	{"NonDairyAlternatives", &models.CoffeeNonDairyAlternative{}},
	{"Sauces", &models.CoffeeSauce{}},
	{"Toppings", &models.CoffeeTopping{}},
}

// Migrate registers the coffee join models and creates or updates every table.
func Migrate(db *gorm.DB) error {
	for _, jt := range coffeeJoinTables {
		if err := db.SetupJoinTable(&models.Coffee{}, jt.field, jt.model); err != nil {
			return fmt.Errorf("setup join table %s: %w", jt.field, err)
		}
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.UserCredential{},
		&models.Employee{},
		&models.EmployeeCredential{},
		&models.Capacity{},
		&models.Milk{},
		&models.NonDairyAlternative{},
		&models.Sauce{},
		&models.Topping{},
		&models.Coffee{},
		&models.CoffeeCapacity{},
		&models.CoffeeMilk{},
		&models.CoffeeNonDairyAlternative{},
		&models.CoffeeSauce{},
		&models.CoffeeTopping{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderDetail{},
		&models.OrderDetailStatus{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	tables, err := db.Migrator().GetTables()
	if err == nil {
		utils.InfoLogger.Printf("AutoMigrate completed, %d tables present", len(tables))
	}
	return nil
}
