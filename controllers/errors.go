package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-store/apperrors"
	"github.com/yeremiapane/coffee-store/middlewares"
	"github.com/yeremiapane/coffee-store/models"
	"github.com/yeremiapane/coffee-store/utils"
)

// codeRegistrationFailed is the body code clients expect for failed registrations.
const codeRegistrationFailed = 501

// respondServiceError maps a service error kind to its HTTP status.
func respondServiceError(c *gin.Context, err error) {
	status, code := statusFor(err)

	if status >= http.StatusInternalServerError {
		utils.ErrorLogger.WithError(err).WithField("path", c.Request.URL.Path).Error("Request failed")
	} else {
		utils.InfoLogger.WithError(err).WithField("path", c.Request.URL.Path).Infof("Request rejected with %d", status)
	}

	utils.RespondErrorCode(c, status, code, err)
}

func statusFor(err error) (status, code int) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorizedUser):
		return http.StatusUnauthorized, http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrElementNotFound), errors.Is(err, apperrors.ErrEmptyList):
		return http.StatusNotFound, http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, http.StatusBadRequest
	case errors.Is(err, apperrors.ErrRegistration):
		return http.StatusBadRequest, codeRegistrationFailed
	default:
		return http.StatusInternalServerError, http.StatusInternalServerError
	}
}

// respondBindError reports a malformed request body.
func respondBindError(c *gin.Context, err error) {
	respondServiceError(c, apperrors.Validation("invalid request: %v", err))
}

// principal returns the caller set by the auth middleware. Routes using it are
// always behind AuthMiddleware, so a missing principal is answered with 401.
func principal(c *gin.Context) (models.Principal, bool) {
	p, ok := middlewares.PrincipalFrom(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
	}
	return p, ok
}
