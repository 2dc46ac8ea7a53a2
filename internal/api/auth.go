package api

import (
	"errors"                            // Sentinel error matching
	"net/http"                          // HTTP status codes
	"neuroscan_backend/internal/domain" // Importing domain models
	"neuroscan_backend/internal/store"  // Persistence layer
	"neuroscan_backend/internal/utils"  // Utility functions
	"regexp"                            // Regular expressions
	"strings"                           // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// RegisterRequest carries the self-registration fields. Note there is no role
// field: registration always creates a patient.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Given name must be provided
	Surname  string `json:"surname" binding:"required"`  // Family name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Embg     string `json:"embg" binding:"required"`     // National-id must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	User  *domain.User `json:"user"`  // Authenticated user (password never serialized)
	Token string       `json:"token"` // JWT token
}

// isValidEmail checks the email shape without trying to be a full RFC parser
func isValidEmail(email string) bool {
	matched, _ := regexp.MatchString(`^[^@\s]+@[^@\s]+\.[^@\s]+$`, email) // Regex for local@domain.tld
	return matched                                                        // Return whether it matched
}

// isValidPassword checks if the password length is between 8 and 72 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72 // 72 is the bcrypt input limit
}

// RegisterHandler creates a new patient account
func RegisterHandler(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate email and password
		if !isValidEmail(req.Email) {
			// If email is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			// If password is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		// Registration is patient-only; doctor accounts are provisioned out of band
		user := domain.User{
			Name:     req.Name,                   // Given name
			Surname:  req.Surname,                // Family name
			Role:     domain.RolePatient,         // Role forced to PATIENT
			Email:    strings.ToLower(req.Email), // Lowercase email to ensure uniqueness
			Password: string(hash),               // Bcrypt hash
			Embg:     req.Embg,                   // National-id string
		}
		// Attempt to create the user in the database
		if err := users.Create(c.Request.Context(), &user); err != nil {
			// Duplicate email or embg maps to a conflict
			if errors.Is(err, store.ErrDuplicate) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email or embg already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns the user record with a JWT
// token. Unknown email and wrong password produce the same not-found outcome
// so the response never reveals which field was wrong.
func LoginHandler(users *store.UserStore, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Fetch user by email
		user, err := users.FindByEmail(c.Request.Context(), strings.ToLower(req.Email))
		if err != nil {
			// If user not found, return the shared not-found outcome
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			// Same outcome as unknown email
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, user.Role, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the user and token in the response
		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}
