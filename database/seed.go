package database

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/utils"
	"gorm.io/gorm"
)

func option(name, price string) models.AddOnOption {
	return models.AddOnOption{Name: name, Price: decimal.RequireFromString(price)}
}

// SeedAddOns fills the add-on tables with the default menu options.
// Tables that already hold rows are left untouched.
func SeedAddOns(db *gorm.DB) error {
	capacities := []models.Capacity{
		{AddOnOption: option("Small", "0")},
		{AddOnOption: option("Medium", "0.50")},
		{AddOnOption: option("Large", "1.00")},
	}
	milks := []models.Milk{
		{AddOnOption: option("Whole Milk", "0")},
		{AddOnOption: option("Skimmed Milk", "0")},
		{AddOnOption: option("Half and Half", "0.30")},
	}
	alternatives := []models.NonDairyAlternative{
		{AddOnOption: option("Oat Milk", "0.60")},
		{AddOnOption: option("Almond Milk", "0.60")},
		{AddOnOption: option("Soy Milk", "0.50")},
		{AddOnOption: option("Coconut Milk", "0.60")},
	}
	sauces := []models.Sauce{
		{AddOnOption: option("Caramel", "0.40")},
		{AddOnOption: option("Chocolate", "0.40")},
		{AddOnOption: option("Vanilla", "0.40")},
	}
	toppings := []models.Topping{
		{AddOnOption: option("Whipped Cream", "0.50")},
		{AddOnOption: option("Cinnamon", "0.20")},
		{AddOnOption: option("Cocoa Powder", "0.20")},
	}

	if err := seedTable(db, "capacities", &models.Capacity{}, &capacities); err != nil {
		return err
	}
	if err := seedTable(db, "milks", &models.Milk{}, &milks); err != nil {
		return err
	}
	if err := seedTable(db, "non-dairy alternatives", &models.NonDairyAlternative{}, &alternatives); err != nil {
		return err
	}
	if err := seedTable(db, "sauces", &models.Sauce{}, &sauces); err != nil {
		return err
	}
	return seedTable(db, "toppings", &models.Topping{}, &toppings)
}

func seedTable(db *gorm.DB, name string, model any, rows any) error {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return fmt.Errorf("count %s: %w", name, err)
	}
	if count > 0 {
		return nil
	}
	if err := db.Create(rows).Error; err != nil {
		return fmt.Errorf("seed %s: %w", name, err)
	}
	utils.InfoLogger.Printf("Seeded default %s", name)
	return nil
}
