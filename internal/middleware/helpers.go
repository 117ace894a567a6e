// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// MustGetIdentityID gets identity ID from context or panics
func MustGetIdentityID(c *gin.Context) int64 {
	id, exists := GetIdentityID(c)
	if !exists {
		panic("identity_id not found in context")
	}
	return id
}

// GetIdentityID gets identity ID from context
func GetIdentityID(c *gin.Context) (int64, bool) {
	v, exists := c.Get("identity_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// IsAdmin checks if the request carries the admin role
func IsAdmin(c *gin.Context) bool {
	role, exists := c.Get("role")
	return exists && role == "admin"
}
