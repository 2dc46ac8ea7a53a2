package middleware

import (
	"net/http"                          // HTTP status codes
	"neuroscan_backend/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// DoctorOnlyMiddleware checks the user's role from the database on each request
func DoctorOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			// If user not found or any error, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Doctor access required"})
			return
		}
		// Check if user role is doctor
		if user.Role != domain.RoleDoctor {
			// If not a doctor, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Doctor access required"})
			return
		}
		// If doctor, proceed to the next handler
		c.Next()
	}
}
