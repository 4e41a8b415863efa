package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-store/services"
	"github.com/yeremiapane/coffee-store/utils"
)

type AuthenticationController struct {
	Users     *services.AuthService
	Employees *services.AdminAuthService
}

func NewAuthenticationController(users *services.AuthService, employees *services.AdminAuthService) *AuthenticationController {
	return &AuthenticationController{Users: users, Employees: employees}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
}

type registerEmployeeRequest struct {
	registerRequest
	Role string `json:"role" binding:"required"`
}

func (ac *AuthenticationController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := ac.Users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("User %d logged in", res.ID)
	utils.RespondJSON(c, http.StatusOK, res)
}

func (ac *AuthenticationController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := ac.Users.Register(c.Request.Context(), services.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)
	utils.RespondJSON(c, http.StatusOK, user)
}

func (ac *AuthenticationController) RegisterEmployee(c *gin.Context) {
	var req registerEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	employee, err := ac.Employees.Register(c.Request.Context(), services.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New employee registered: %s (role=%s)", employee.Email, employee.Role)
	utils.RespondJSON(c, http.StatusOK, employee)
}

func (ac *AuthenticationController) EmployeeLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := ac.Employees.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Employee %d logged in (role=%s)", res.ID, res.Role)
	utils.RespondJSON(c, http.StatusOK, res)
}
