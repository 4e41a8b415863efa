package Controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/coffee-store/controllers"
	"github.com/yeremiapane/coffee-store/database"
	"github.com/yeremiapane/coffee-store/middlewares"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/services"
	"github.com/yeremiapane/coffee-store/utils"
)

// testEnv wires controllers to a private in-memory database the same way the
// application router does, without the rate limiter.
type testEnv struct {
	db     *gorm.DB
	tokens *services.TokenService
	router *gin.Engine
	coffee *models.Coffee
	large  models.Capacity
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error")

	db := setupTestDB(t)
	tokens := services.NewTokenService("test-secret", "CoffeeStore", time.Hour)
	blobs, err := services.NewLocalBlobService(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	coffeeService := services.NewCoffeeService(db, blobs)
	authCtrl := controllers.NewAuthenticationController(services.NewAuthService(db, tokens), services.NewAdminAuthService(db, tokens))
	coffeeCtrl := controllers.NewCoffeeController(coffeeService)
	cartCtrl := controllers.NewCartController(services.NewCartService(db, coffeeService))
	orderCtrl := controllers.NewOrderController(services.NewOrderService(db))

	auth := middlewares.AuthMiddleware(tokens)
	user := middlewares.RequireRoles(models.RoleUser)
	management := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager)
	staff := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleBarista)

	r := gin.New()
	r.POST("/api/Authentication/Login", authCtrl.Login)
	r.POST("/api/Authentication/Register", authCtrl.Register)
	r.POST("/api/Authentication/RegisterEmployee", authCtrl.RegisterEmployee)
	r.POST("/api/Authentication/EmployeeLogin", authCtrl.EmployeeLogin)

	r.POST("/api/Cart/AddCoffeeToCart", auth, user, cartCtrl.AddCoffeeToCart)
	r.PUT("/api/Cart/UpdateCartItemQuantity", auth, user, cartCtrl.UpdateCartItemQuantity)
	r.GET("/api/Cart/GetCartItems", auth, user, cartCtrl.GetCartItems)
	r.DELETE("/api/Cart/DeleteCartItem", auth, user, cartCtrl.DeleteCartItem)
	r.POST("/api/Cart/CheckoutCart", auth, user, cartCtrl.CheckoutCart)

	r.GET("/api/Coffee/GetAllCoffees", coffeeCtrl.GetAllCoffees)
	r.GET("/api/Coffee/GetCoffeeDetails", coffeeCtrl.GetCoffeeDetails)
	r.PUT("/api/Coffee/UpdateCoffeeDetails", auth, management, coffeeCtrl.UpdateCoffeeDetails)
	r.POST("/api/Coffee/addNewCoffee", auth, management, coffeeCtrl.AddNewCoffee)
	r.GET("/api/Coffee/GetAllAddOns", auth, management, coffeeCtrl.GetAllAddOns)

	r.GET("/api/Order/GetAllOrders", auth, middlewares.RequireRoles(models.RoleAdmin), orderCtrl.GetAllOrders)
	r.GET("/api/Order/GetAllActiveOrders", auth, staff, orderCtrl.GetAllActiveOrders)
	r.GET("/api/Order/GetMyOrders", auth, user, orderCtrl.GetMyOrders)
	r.GET("/api/Order/GetMyActiveOrders", auth, user, orderCtrl.GetMyActiveOrders)
	r.PUT("/api/Order/UpdateOrderDetails", auth, staff, orderCtrl.UpdateOrderDetails)

	env := &testEnv{db: db, tokens: tokens, router: r}

	env.large = models.Capacity{AddOnOption: models.AddOnOption{Name: "Large", Price: decimal.RequireFromString("1.00")}}
	require.NoError(t, db.Create(&env.large).Error)
	env.coffee = &models.Coffee{Name: "Flat White", Price: decimal.RequireFromString("3.00")}
	require.NoError(t, db.Create(env.coffee).Error)
	require.NoError(t, db.Create(&models.CoffeeCapacity{CoffeeID: env.coffee.ID, CapacityID: env.large.ID}).Error)

	return env
}

func (e *testEnv) token(t *testing.T, id uint, role string) string {
	t.Helper()
	token, err := e.tokens.GenerateToken(models.Principal{ID: id, Name: "tester", Role: role})
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func assertError(t *testing.T, w *httptest.ResponseRecorder, status, code int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	body := decode[utils.ErrorModel](t, w)
	require.Equal(t, code, body.Code)
	require.NotEmpty(t, body.Message)
}
