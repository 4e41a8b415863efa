package router

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-store/config"
	"github.com/yeremiapane/coffee-store/controllers"
	"github.com/yeremiapane/coffee-store/middlewares"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	blobs, err := services.NewLocalBlobService(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("init blob storage: %w", err)
	}
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)

	coffeeService := services.NewCoffeeService(db, blobs)
	authCtrl := controllers.NewAuthenticationController(
		services.NewAuthService(db, tokens),
		services.NewAdminAuthService(db, tokens),
	)
	coffeeCtrl := controllers.NewCoffeeController(coffeeService)
	cartCtrl := controllers.NewCartController(services.NewCartService(db, coffeeService))
	orderCtrl := controllers.NewOrderController(services.NewOrderService(db))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())

	// Only image files are served from the upload directory.
	uploads := r.Group("/uploads", func(c *gin.Context) {
		if !services.IsAllowedImage(strings.ToLower(filepath.Ext(c.Request.URL.Path))) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	})
	uploads.Static("/", cfg.UploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := r.Group("/api")
	requireAuth := middlewares.AuthMiddleware(tokens)
	customer := middlewares.RequireRoles(models.RoleUser)
	management := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager)
	staff := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleBarista)

	authentication := api.Group("/Authentication")
	authentication.Use(middlewares.NewRateLimiter(cfg.AuthRateLimit).RateLimit())
	{
		authentication.POST("/Login", authCtrl.Login)
		authentication.POST("/Register", authCtrl.Register)
		authentication.POST("/RegisterEmployee", authCtrl.RegisterEmployee)
		authentication.POST("/EmployeeLogin", authCtrl.EmployeeLogin)
	}

	cart := api.Group("/Cart", requireAuth, customer)
	{
		cart.POST("/AddCoffeeToCart", cartCtrl.AddCoffeeToCart)
		cart.PUT("/UpdateCartItemQuantity", cartCtrl.UpdateCartItemQuantity)
		cart.GET("/GetCartItems", cartCtrl.GetCartItems)
		cart.DELETE("/DeleteCartItem", cartCtrl.DeleteCartItem)
		cart.POST("/CheckoutCart", cartCtrl.CheckoutCart)
	}

	coffee := api.Group("/Coffee")
	{
		coffee.GET("/GetAllCoffees", coffeeCtrl.GetAllCoffees)
		coffee.GET("/GetCoffeeDetails", coffeeCtrl.GetCoffeeDetails)
		coffee.PUT("/UpdateCoffeeDetails", requireAuth, management, coffeeCtrl.UpdateCoffeeDetails)
		coffee.POST("/addNewCoffee", requireAuth, management, coffeeCtrl.AddNewCoffee)
		coffee.GET("/GetAllAddOns", requireAuth, management, coffeeCtrl.GetAllAddOns)
	}

	order := api.Group("/Order", requireAuth)
	{
		order.GET("/GetAllOrders", middlewares.RequireRoles(models.RoleAdmin), orderCtrl.GetAllOrders)
		order.GET("/GetAllActiveOrders", staff, orderCtrl.GetAllActiveOrders)
		order.GET("/GetMyOrders", customer, orderCtrl.GetMyOrders)
		order.GET("/GetMyActiveOrders", customer, orderCtrl.GetMyActiveOrders)
		order.PUT("/UpdateOrderDetails", staff, orderCtrl.UpdateOrderDetails)
	}

	return r, nil
}
