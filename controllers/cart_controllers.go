package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/services"
	"github.com/yeremiapane/coffee-store/utils"
)

type CartController struct {
	Service *services.CartService
}

func NewCartController(service *services.CartService) *CartController {
	return &CartController{Service: service}
}

type addToCartRequest struct {
	CoffeeID uint `json:"coffeeId" binding:"required"`
	models.AddOnSelection
	Quantity int `json:"quantity"`
}

type updateQuantityRequest struct {
	CartItemID uint `json:"cartItemId" binding:"required"`
	Quantity   int  `json:"quantity"`
}

func (cc *CartController) AddCoffeeToCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := cc.Service.AddItemToCart(c.Request.Context(), p.ID, services.AddItemRequest{
		CoffeeID:  req.CoffeeID,
		Selection: req.AddOnSelection,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, item)
}

func (cc *CartController) UpdateCartItemQuantity(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	item, err := cc.Service.UpdateCartItemQuantity(c.Request.Context(), p.ID, req.CartItemID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, item)
}

func (cc *CartController) GetCartItems(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	items, err := cc.Service.GetCartItems(c.Request.Context(), p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, items)
}

func (cc *CartController) DeleteCartItem(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, err := queryID(c, "cartItemId")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	item, err := cc.Service.DeleteCartItem(c.Request.Context(), p.ID, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, item)
}

// CheckoutCart answers an empty cart with HTTP 401 and body code 404, which
// existing clients rely on.
func (cc *CartController) CheckoutCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	order, err := cc.Service.CheckoutCart(c.Request.Context(), p.ID)
	if errors.Is(err, apperrors.ErrEmptyList) {
		utils.InfoLogger.WithField("user_id", p.ID).Info("Checkout attempted on an empty cart")
		utils.RespondErrorCode(c, http.StatusUnauthorized, http.StatusNotFound, err)
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d placed by user %d (total=%s)", order.ID, p.ID, order.TotalAmount)
	utils.RespondJSON(c, http.StatusOK, order)
}

func queryID(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperrors.Validation("%s is required", name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.Validation("invalid %s", name)
	}
	return uint(id), nil
}
