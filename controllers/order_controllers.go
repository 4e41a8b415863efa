package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-store/services"
	"github.com/yeremiapane/coffee-store/utils"
)

type OrderController struct {
	Service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{Service: service}
}

type updateOrderDetailRequest struct {
	OrderDetailID uint   `json:"orderDetailId" binding:"required"`
	Status        string `json:"status" binding:"required"`
}

func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Service.ViewAllOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

func (oc *OrderController) GetAllActiveOrders(c *gin.Context) {
	orders, err := oc.Service.ViewAllActiveOrders(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

func (oc *OrderController) GetMyOrders(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	orders, err := oc.Service.ViewAllMyOrders(c.Request.Context(), p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

func (oc *OrderController) GetMyActiveOrders(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	orders, err := oc.Service.ViewMyActiveOrders(c.Request.Context(), p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, orders)
}

// UpdateOrderDetails records the employee making the change on the detail status.
func (oc *OrderController) UpdateOrderDetails(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req updateOrderDetailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	detail, err := oc.Service.UpdateOrderDetail(c.Request.Context(), req.OrderDetailID, req.Status, p.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order detail %d set to %s by employee %d", detail.ID, req.Status, p.ID)
	utils.RespondJSON(c, http.StatusOK, detail)
}
