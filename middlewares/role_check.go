package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/coffee-store/utils"
)

// RequireRoles lets the request through only when the authenticated principal
// holds one of roles. It must run after AuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized"))
			c.Abort()
			return
		}

		if !principal.HasRole(roles...) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"user_id": principal.ID,
				"role":    principal.Role,
				"path":    c.Request.URL.Path,
			}).Warn("Forbidden request")
			utils.RespondError(c, http.StatusForbidden, fmt.Errorf("%s access required", strings.Join(roles, " or ")))
			c.Abort()
			return
		}

		c.Next()
	}
}
