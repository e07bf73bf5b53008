package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyops/crew-roster-api/internal/middleware"
	"github.com/skyops/crew-roster-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func performedBy(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.Email
	}
	return "system"
}

// parseDate reads a YYYY-MM-DD query param as a UTC midnight instant.
func parseDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
