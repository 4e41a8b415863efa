package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/services"
	"github.com/yeremiapane/coffee-store/utils"
)

// maxUploadSize caps the multipart body of addNewCoffee.
const maxUploadSize = 10 << 20

type CoffeeController struct {
	Service *services.CoffeeService
}

func NewCoffeeController(service *services.CoffeeService) *CoffeeController {
	return &CoffeeController{Service: service}
}

type updateCoffeeRequest struct {
	ID          uint               `json:"id" binding:"required"`
	Name        *string            `json:"name"`
	Price       *decimal.Decimal   `json:"price"`
	Description *string            `json:"description"`
	AddOns      *services.AddOnIDs `json:"addOns"`
}

func (cc *CoffeeController) GetAllCoffees(c *gin.Context) {
	coffees, err := cc.Service.GetAllCoffees(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, coffees)
}

func (cc *CoffeeController) GetCoffeeDetails(c *gin.Context) {
	id, err := queryID(c, "coffeeId")
	if err != nil {
		respondServiceError(c, err)
		return
	}

	coffee, err := cc.Service.GetCoffeeByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, coffee)
}

func (cc *CoffeeController) GetAllAddOns(c *gin.Context) {
	catalog, err := cc.Service.GetDetailsForAddingNewCoffee(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, catalog)
}

func (cc *CoffeeController) UpdateCoffeeDetails(c *gin.Context) {
	var req updateCoffeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	coffee, err := cc.Service.UpdateCoffeeDetails(c.Request.Context(), services.UpdateCoffeeRequest{
		ID:          req.ID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		AddOns:      req.AddOns,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Coffee %d updated", coffee.ID)
	utils.RespondJSON(c, http.StatusOK, coffee)
}

// AddNewCoffee reads a multipart form with the fields name, price, description,
// an optional image file and the add-on id lists (capacityIds, milkIds,
// nonDairyAlternativeIds, sauceIds, toppingIds). Lists may repeat the field or
// use comma separated values.
func (cc *CoffeeController) AddNewCoffee(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil {
		respondServiceError(c, apperrors.Validation("error processing form: %v", err))
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(c.PostForm("price")))
	if err != nil {
		respondServiceError(c, apperrors.Validation("invalid price"))
		return
	}

	var addOns services.AddOnIDs
	lists := []struct {
		field string
		ids   *[]uint
	}{
		{"capacityIds", &addOns.CapacityIDs},
		{"milkIds", &addOns.MilkIDs},
		{"nonDairyAlternativeIds", &addOns.NonDairyAlternativeIDs},
		{"sauceIds", &addOns.SauceIDs},
		{"toppingIds", &addOns.ToppingIDs},
	}
	for _, l := range lists {
		if *l.ids, err = formIDs(c, l.field); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	req := services.NewCoffeeRequest{
		Name:        c.PostForm("name"),
		Price:       price,
		Description: c.PostForm("description"),
		AddOns:      addOns,
	}

	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			respondServiceError(c, fmt.Errorf("open uploaded image: %w", err))
			return
		}
		defer file.Close()
		req.ImageName = header.Filename
		req.Image = file
	} else if !errors.Is(err, http.ErrMissingFile) {
		respondServiceError(c, apperrors.Validation("invalid image: %v", err))
		return
	}

	coffee, err := cc.Service.AddNewCoffee(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Coffee %d (%s) added", coffee.ID, coffee.Name)
	utils.RespondJSON(c, http.StatusOK, coffee)
}

func formIDs(c *gin.Context, field string) ([]uint, error) {
	var ids []uint
	for _, value := range c.PostFormArray(field) {
		for _, raw := range strings.Split(value, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return nil, apperrors.Validation("invalid %s value %q", field, raw)
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}
