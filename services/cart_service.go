package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/repositories"
	"gorm.io/gorm"
)

type AddItemRequest struct {
	CoffeeID  uint
	Selection models.AddOnSelection
	Quantity  int
}

type CartService struct {
	db       *gorm.DB
	coffees  *CoffeeService
	carts    *repositories.Repository[models.Cart]
	items    *repositories.Repository[models.CartItem]
	orders   *repositories.Repository[models.Order]
	details  *repositories.Repository[models.OrderDetail]
	statuses *repositories.Repository[models.OrderDetailStatus]
}

func NewCartService(db *gorm.DB, coffees *CoffeeService) *CartService {
	return &CartService{
		db:       db,
		coffees:  coffees,
		carts:    repositories.New[models.Cart](db, "cart"),
		items:    repositories.New[models.CartItem](db, "cart item", models.CartItemAssociations...),
		orders:   repositories.New[models.Order](db, "order", orderPreloads...),
		details:  repositories.New[models.OrderDetail](db, "order detail"),
		statuses: repositories.New[models.OrderDetailStatus](db, "order detail status"),
	}
}

// AddItemToCart puts a coffee with its add-ons into the user's cart, creating
// the cart on first use. A line with the same coffee and add-ons is merged.
func (s *CartService) AddItemToCart(ctx context.Context, userID uint, req AddItemRequest) (*models.CartItem, error) {
	if err := validateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	coffee, err := s.coffees.GetCoffeeByID(ctx, req.CoffeeID)
	if err != nil {
		return nil, err
	}
	unitPrice, err := PriceSelection(coffee, req.Selection)
	if err != nil {
		return nil, err
	}

	var itemID uint
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := s.cartFor(ctx, tx, userID)
		if err != nil {
			return err
		}

		items := s.items.WithTx(tx)
		existing, err := items.Find(ctx, "cart_id = ? AND coffee_id = ?", cart.ID, coffee.ID)
		if err != nil {
			return err
		}
		for i := range existing {
			item := &existing[i]
			if !item.Selection().Equal(req.Selection) {
				continue
			}
			if item.Quantity > models.MaxCartQuantity-req.Quantity {
				return apperrors.Validation("quantity must not exceed %d", models.MaxCartQuantity)
			}
			item.UnitPrice = unitPrice
			item.SetQuantity(item.Quantity + req.Quantity)
			if _, err := items.Update(ctx, item); err != nil {
				return err
			}
			itemID = item.ID
			return nil
		}

		item := &models.CartItem{
			CartID:                cart.ID,
			CoffeeID:              coffee.ID,
			CapacityID:            req.Selection.CapacityID,
			MilkID:                req.Selection.MilkID,
			NonDairyAlternativeID: req.Selection.NonDairyAlternativeID,
			SauceID:               req.Selection.SauceID,
			ToppingID:             req.Selection.ToppingID,
			UnitPrice:             unitPrice,
		}
		item.SetQuantity(req.Quantity)
		if _, err := items.Add(ctx, item); err != nil {
			return err
		}
		itemID = item.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.items.Get(ctx, itemID)
}

func (s *CartService) UpdateCartItemQuantity(ctx context.Context, userID, cartItemID uint, quantity int) (*models.CartItem, error) {
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}

	item, err := s.ownedItem(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}

	item.SetQuantity(quantity)
	if _, err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) DeleteCartItem(ctx context.Context, userID, cartItemID uint) (*models.CartItem, error) {
	if _, err := s.ownedItem(ctx, userID, cartItemID); err != nil {
		return nil, err
	}
	return s.items.Delete(ctx, cartItemID)
}

func (s *CartService) GetCartItems(ctx context.Context, userID uint) ([]models.CartItem, error) {
	cart, err := s.carts.FindOne(ctx, "user_id = ?", userID)
	if errors.Is(err, apperrors.ErrElementNotFound) {
		return nil, apperrors.EmptyList("cart items")
	}
	if err != nil {
		return nil, err
	}

	items, err := s.items.Find(ctx, "cart_id = ?", cart.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.EmptyList("cart items")
	}
	return items, nil
}

// CheckoutCart turns the user's cart into an order in a single transaction:
// the order, one detail and one pending status per cart item, and the removal
// of the cart items either all happen or none do.
func (s *CartService) CheckoutCart(ctx context.Context, userID uint) (*models.Order, error) {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("begin checkout: %w", tx.Error)
	}

	cart, err := s.carts.WithTx(tx).FindOne(ctx, "user_id = ?", userID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, apperrors.ErrElementNotFound) {
			return nil, apperrors.EmptyList("cart items")
		}
		return nil, err
	}

	items, err := s.items.WithTx(tx).Find(ctx, "cart_id = ?", cart.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if len(items) == 0 {
		tx.Rollback()
		return nil, apperrors.EmptyList("cart items")
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}

	order := &models.Order{
		UserID:      userID,
		Status:      models.StatusPending,
		TotalAmount: total,
	}
	if _, err := s.orders.WithTx(tx).Add(ctx, order); err != nil {
		tx.Rollback()
		return nil, err
	}

	for _, item := range items {
		detail := &models.OrderDetail{
			OrderID:               order.ID,
			CoffeeID:              item.CoffeeID,
			CapacityID:            item.CapacityID,
			MilkID:                item.MilkID,
			NonDairyAlternativeID: item.NonDairyAlternativeID,
			SauceID:               item.SauceID,
			ToppingID:             item.ToppingID,
			Quantity:              item.Quantity,
			UnitPrice:             item.UnitPrice,
			TotalPrice:            item.TotalPrice,
		}
		if item.Coffee != nil {
			detail.CoffeeName = item.Coffee.Name
		}
		if _, err := s.details.WithTx(tx).Add(ctx, detail); err != nil {
			tx.Rollback()
			return nil, err
		}

		status := &models.OrderDetailStatus{OrderDetailID: detail.ID, Status: models.StatusPending}
		if _, err := s.statuses.WithTx(tx).Add(ctx, status); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	removed, err := s.items.WithTx(tx).DeleteWhere(ctx, "cart_id = ?", cart.ID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if removed != int64(len(items)) {
		tx.Rollback()
		return nil, fmt.Errorf("cart %d changed during checkout", cart.ID)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}

	return s.orders.Get(ctx, order.ID)
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return apperrors.Validation("quantity must be greater than 0")
	}
	if quantity > models.MaxCartQuantity {
		return apperrors.Validation("quantity must not exceed %d", models.MaxCartQuantity)
	}
	return nil
}

func (s *CartService) cartFor(ctx context.Context, tx *gorm.DB, userID uint) (*models.Cart, error) {
	carts := s.carts.WithTx(tx)
	cart, err := carts.FindOne(ctx, "user_id = ?", userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, apperrors.ErrElementNotFound) {
		return nil, err
	}
	return carts.Add(ctx, &models.Cart{UserID: userID})
}

// ownedItem loads a cart item and hides items from other users' carts.
func (s *CartService) ownedItem(ctx context.Context, userID, cartItemID uint) (*models.CartItem, error) {
	item, err := s.items.Get(ctx, cartItemID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.Get(ctx, item.CartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, apperrors.NewElementNotFound("cart item", cartItemID)
	}
	return item, nil
}
