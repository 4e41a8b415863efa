package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/repositories"
	"github.com/yeremiapane/coffee-store/utils"
	"gorm.io/gorm"
)

// AddOnIDs lists the add-on options a coffee offers, per kind.
type AddOnIDs struct {
	CapacityIDs            []uint `json:"capacityIds"`
	MilkIDs                []uint `json:"milkIds"`
	NonDairyAlternativeIDs []uint `json:"nonDairyAlternativeIds"`
	SauceIDs               []uint `json:"sauceIds"`
	ToppingIDs             []uint `json:"toppingIds"`
}

type NewCoffeeRequest struct {
	Name        string
	Price       decimal.Decimal
	Description string
	AddOns      AddOnIDs
	ImageName   string
	Image       io.Reader
}

// UpdateCoffeeRequest changes only the fields that are set. A non-nil AddOns
// replaces every add-on association of the coffee.
type UpdateCoffeeRequest struct {
	ID          uint
	Name        *string
	Price       *decimal.Decimal
	Description *string
	AddOns      *AddOnIDs
}

type CoffeeService struct {
	db    *gorm.DB
	blobs BlobService

	coffees      *repositories.Repository[models.Coffee]
	capacities   *repositories.Repository[models.Capacity]
	milks        *repositories.Repository[models.Milk]
	alternatives *repositories.Repository[models.NonDairyAlternative]
	sauces       *repositories.Repository[models.Sauce]
	toppings     *repositories.Repository[models.Topping]

	coffeeCapacities   *repositories.IntermediateRepository[models.CoffeeCapacity]
	coffeeMilks        *repositories.IntermediateRepository[models.CoffeeMilk]
	coffeeAlternatives *repositories.IntermediateRepository[models.CoffeeNonDairyAlternative]
	coffeeSauces       *repositories.IntermediateRepository[models.CoffeeSauce]
	coffeeToppings     *repositories.IntermediateRepository[models.CoffeeTopping]
}

func NewCoffeeService(db *gorm.DB, blobs BlobService) *CoffeeService {
	return &CoffeeService{
		db:                 db,
		blobs:              blobs,
		coffees:            repositories.New[models.Coffee](db, "coffee", models.CoffeeAssociations...),
		capacities:         repositories.New[models.Capacity](db, "capacity"),
		milks:              repositories.New[models.Milk](db, "milk"),
		alternatives:       repositories.New[models.NonDairyAlternative](db, "non-dairy alternative"),
		sauces:             repositories.New[models.Sauce](db, "sauce"),
		toppings:           repositories.New[models.Topping](db, "topping"),
		coffeeCapacities:   repositories.NewIntermediate[models.CoffeeCapacity](db, "coffee capacity"),
		coffeeMilks:        repositories.NewIntermediate[models.CoffeeMilk](db, "coffee milk"),
		coffeeAlternatives: repositories.NewIntermediate[models.CoffeeNonDairyAlternative](db, "coffee non-dairy alternative"),
		coffeeSauces:       repositories.NewIntermediate[models.CoffeeSauce](db, "coffee sauce"),
		coffeeToppings:     repositories.NewIntermediate[models.CoffeeTopping](db, "coffee topping"),
	}
}

func (s *CoffeeService) GetAllCoffees(ctx context.Context) ([]models.Coffee, error) {
	coffees, err := s.coffees.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(coffees) == 0 {
		return nil, apperrors.EmptyList("coffees")
	}
	return coffees, nil
}

func (s *CoffeeService) GetCoffeeByID(ctx context.Context, id uint) (*models.Coffee, error) {
	return s.coffees.Get(ctx, id)
}

// GetDetailsForAddingNewCoffee returns every add-on option for the new-coffee form.
func (s *CoffeeService) GetDetailsForAddingNewCoffee(ctx context.Context) (*models.AddOnCatalog, error) {
	var (
		catalog models.AddOnCatalog
		err     error
	)
	if catalog.Capacities, err = s.capacities.GetAll(ctx); err != nil {
		return nil, err
	}
	if catalog.Milks, err = s.milks.GetAll(ctx); err != nil {
		return nil, err
	}
	if catalog.NonDairyAlternatives, err = s.alternatives.GetAll(ctx); err != nil {
		return nil, err
	}
	if catalog.Sauces, err = s.sauces.GetAll(ctx); err != nil {
		return nil, err
	}
	if catalog.Toppings, err = s.toppings.GetAll(ctx); err != nil {
		return nil, err
	}
	if catalog.IsEmpty() {
		return nil, apperrors.EmptyList("add-ons")
	}
	return &catalog, nil
}

// AddNewCoffee uploads the image and stores the coffee with its add-ons.
// The uploaded image is removed again when the coffee cannot be saved.
func (s *CoffeeService) AddNewCoffee(ctx context.Context, req NewCoffeeRequest) (*models.Coffee, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.Validation("coffee name is required")
	}
	if req.Price.IsNegative() {
		return nil, apperrors.Validation("price must not be negative")
	}
	if err := s.ensureAddOnsExist(ctx, req.AddOns); err != nil {
		return nil, err
	}

	coffee := &models.Coffee{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Description: req.Description,
	}

	if req.Image != nil {
		url, err := s.blobs.Upload(ctx, req.ImageName, req.Image)
		if err != nil {
			if errors.Is(err, ErrUnsupportedImage) {
				return nil, apperrors.Validation("%v", err)
			}
			return nil, fmt.Errorf("upload coffee image: %w", err)
		}
		coffee.ImageUrl = url
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.coffees.WithTx(tx).Add(ctx, coffee); err != nil {
			return err
		}
		return s.linkAddOns(ctx, tx, coffee.ID, req.AddOns)
	})
	if err != nil {
		if coffee.ImageUrl != "" {
			if delErr := s.blobs.Delete(ctx, coffee.ImageUrl); delErr != nil {
				utils.ErrorLogger.WithError(delErr).Errorf("Failed to remove image %s", coffee.ImageUrl)
			}
		}
		return nil, err
	}

	return s.coffees.Get(ctx, coffee.ID)
}

func (s *CoffeeService) UpdateCoffeeDetails(ctx context.Context, req UpdateCoffeeRequest) (*models.Coffee, error) {
	coffee, err := s.coffees.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperrors.Validation("coffee name must not be empty")
		}
		coffee.Name = strings.TrimSpace(*req.Name)
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, apperrors.Validation("price must not be negative")
		}
		coffee.Price = *req.Price
	}
	if req.Description != nil {
		coffee.Description = *req.Description
	}
	if req.AddOns != nil {
		if err := s.ensureAddOnsExist(ctx, *req.AddOns); err != nil {
			return nil, err
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.coffees.WithTx(tx).Update(ctx, coffee); err != nil {
			return err
		}
		if req.AddOns == nil {
			return nil
		}
		if err := s.unlinkAddOns(ctx, tx, coffee.ID); err != nil {
			return err
		}
		return s.linkAddOns(ctx, tx, coffee.ID, *req.AddOns)
	})
	if err != nil {
		return nil, err
	}

	return s.coffees.Get(ctx, coffee.ID)
}

// PriceSelection checks that every selected add-on is offered by coffee and
// returns the unit price of the coffee with those add-ons.
func PriceSelection(coffee *models.Coffee, sel models.AddOnSelection) (decimal.Decimal, error) {
	price := coffee.Price

	pick := func(entity string, id *uint, options []models.AddOnOption) error {
		if id == nil {
			return nil
		}
		for _, o := range options {
			if o.ID == *id {
				price = price.Add(o.Price)
				return nil
			}
		}
		return apperrors.NewElementNotFound(entity, *id)
	}

	if err := pick("capacity", sel.CapacityID, optionsOf(coffee.Capacities, func(c models.Capacity) models.AddOnOption { return c.AddOnOption })); err != nil {
		return decimal.Zero, err
	}
	if err := pick("milk", sel.MilkID, optionsOf(coffee.Milks, func(m models.Milk) models.AddOnOption { return m.AddOnOption })); err != nil {
		return decimal.Zero, err
	}
	if err := pick("non-dairy alternative", sel.NonDairyAlternativeID, optionsOf(coffee.NonDairyAlternatives, func(n models.NonDairyAlternative) models.AddOnOption { return n.AddOnOption })); err != nil {
		return decimal.Zero, err
	}
	if err := pick("sauce", sel.SauceID, optionsOf(coffee.Sauces, func(s models.Sauce) models.AddOnOption { return s.AddOnOption })); err != nil {
		return decimal.Zero, err
	}
	if err := pick("topping", sel.ToppingID, optionsOf(coffee.Toppings, func(t models.Topping) models.AddOnOption { return t.AddOnOption })); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

func optionsOf[T any](items []T, get func(T) models.AddOnOption) []models.AddOnOption {
	out := make([]models.AddOnOption, len(items))
	for i, it := range items {
		out[i] = get(it)
	}
	return out
}

func (s *CoffeeService) ensureAddOnsExist(ctx context.Context, ids AddOnIDs) error {
	if err := ensureExist(ctx, s.capacities, ids.CapacityIDs); err != nil {
		return err
	}
	if err := ensureExist(ctx, s.milks, ids.MilkIDs); err != nil {
		return err
	}
	if err := ensureExist(ctx, s.alternatives, ids.NonDairyAlternativeIDs); err != nil {
		return err
	}
	if err := ensureExist(ctx, s.sauces, ids.SauceIDs); err != nil {
		return err
	}
	return ensureExist(ctx, s.toppings, ids.ToppingIDs)
}

func ensureExist[T any](ctx context.Context, repo *repositories.Repository[T], ids []uint) error {
	for _, id := range ids {
		if _, err := repo.Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *CoffeeService) linkAddOns(ctx context.Context, tx *gorm.DB, coffeeID uint, ids AddOnIDs) error {
	if err := link(ctx, s.coffeeCapacities.WithTx(tx), ids.CapacityIDs, func(id uint) *models.CoffeeCapacity {
		return &models.CoffeeCapacity{CoffeeID: coffeeID, CapacityID: id}
	}); err != nil {
		return err
	}
	if err := link(ctx, s.coffeeMilks.WithTx(tx), ids.MilkIDs, func(id uint) *models.CoffeeMilk {
		return &models.CoffeeMilk{CoffeeID: coffeeID, MilkID: id}
	}); err != nil {
		return err
	}
	if err := link(ctx, s.coffeeAlternatives.WithTx(tx), ids.NonDairyAlternativeIDs, func(id uint) *models.CoffeeNonDairyAlternative {
		return &models.CoffeeNonDairyAlternative{CoffeeID: coffeeID, NonDairyAlternativeID: id}
	}); err != nil {
		return err
	}
	if err := link(ctx, s.coffeeSauces.WithTx(tx), ids.SauceIDs, func(id uint) *models.CoffeeSauce {
		return &models.CoffeeSauce{CoffeeID: coffeeID, SauceID: id}
	}); err != nil {
		return err
	}
	return link(ctx, s.coffeeToppings.WithTx(tx), ids.ToppingIDs, func(id uint) *models.CoffeeTopping {
		return &models.CoffeeTopping{CoffeeID: coffeeID, ToppingID: id}
	})
}

func (s *CoffeeService) unlinkAddOns(ctx context.Context, tx *gorm.DB, coffeeID uint) error {
	match := map[string]any{"coffee_id": coffeeID}
	if err := s.coffeeCapacities.WithTx(tx).Remove(ctx, match); err != nil {
		return err
	}
	if err := s.coffeeMilks.WithTx(tx).Remove(ctx, match); err != nil {
		return err
	}
	if err := s.coffeeAlternatives.WithTx(tx).Remove(ctx, match); err != nil {
		return err
	}
	if err := s.coffeeSauces.WithTx(tx).Remove(ctx, match); err != nil {
		return err
	}
	return s.coffeeToppings.WithTx(tx).Remove(ctx, match)
}

// link adds one join row per distinct id.
func link[T any](ctx context.Context, repo *repositories.IntermediateRepository[T], ids []uint, build func(uint) *T) error {
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if _, err := repo.Add(ctx, build(id)); err != nil {
			return err
		}
	}
	return nil
}
