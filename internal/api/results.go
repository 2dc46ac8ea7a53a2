package api

import (
	"context"                            // Context for Redis operations
	"errors"                             // Sentinel error matching
	"net/http"                           // HTTP status codes
	"neuroscan_backend/internal/domain"  // Importing domain models
	"neuroscan_backend/internal/service" // Result workflow
	"neuroscan_backend/internal/store"   // Persistence layer
	"neuroscan_backend/internal/utils"   // Utility functions
	"time"                               // Time durations

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// ResultRequest represents a result-creation request
type ResultRequest struct {
	Confidence     float32 `json:"confidence"`                        // Classifier score, open contract
	Classification string  `json:"classification" binding:"required"` // Free-text label
	ModelUsed      string  `json:"modelUsed" binding:"required"`      // Model identifier
	Notes          string  `json:"notes" binding:"max=2000"`          // Free text, bounded length
	PatientEmbg    string  `json:"patientEmbg" binding:"required"`    // Patient national-id
	DoctorEmail    string  `json:"doctorEmail" binding:"required"`    // Doctor login email
}

// SaveResultHandler records a new result via the workflow service
func SaveResultHandler(svc *service.ResultService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResultRequest // Bind JSON request to struct
		// Validate request
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Run the workflow: resolve identities, persist, then notify
		result, err := svc.CreateResult(c.Request.Context(), req.Confidence, req.Classification, req.ModelUsed, req.Notes, req.DoctorEmail, req.PatientEmbg)
		// Handle workflow result
		if err != nil {
			// Unresolved doctor or patient maps to not found
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"doctor_email": req.DoctorEmail, // Doctor identifier
				"patient_embg": req.PatientEmbg, // Patient identifier
				"error":        err.Error(),     // Error message
			}).Error("Result save failed") // Log save failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save result"})
			return
		}
		// Log successful save
		logrus.WithFields(logrus.Fields{
			"result_id":    result.ID,                       // Persisted result ID
			"doctor_email": result.Doctor.Email,             // Doctor identifier
			"patient_id":   result.PatientID,                // Patient ID
			"timestamp":    time.Now().Format(time.RFC3339), // Current timestamp
		}).Info("Result recorded") // Log save success
		// Invalidate cached listings for both parties
		if rdb != nil {
			ctx := context.Background()                                                             // Context for Redis operations
			_ = utils.DeleteCache(ctx, rdb, utils.ResultsCacheKey("doctor", result.Doctor.Email))   // Invalidate doctor listing
			_ = utils.DeleteCache(ctx, rdb, utils.ResultsCacheKey("patient", result.Patient.Email)) // Invalidate patient listing
		}
		// Return the committed result
		c.JSON(http.StatusOK, result)
	}
}

// DoctorResultsHandler lists every result recorded by the given doctor
func DoctorResultsHandler(svc *service.ResultService, rdb *redis.Client) gin.HandlerFunc {
	return resultsHandler(rdb, "doctor", svc.GetDoctorResults)
}

// PatientResultsHandler lists every result recorded for the given patient
func PatientResultsHandler(svc *service.ResultService, rdb *redis.Client) gin.HandlerFunc {
	return resultsHandler(rdb, "patient", svc.GetPatientResults)
}

// resultsHandler serves one scoped listing with a cache-first read path
func resultsHandler(rdb *redis.Client, scope string, list func(context.Context, string) ([]domain.Result, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")                    // Path parameter: the user's email
		cacheKey := utils.ResultsCacheKey(scope, username) // Cache key for this listing
		ctx := context.Background()                        // Context for Redis operations
		var results []domain.Result                        // Slice to hold results
		// Try to get from cache
		if rdb != nil {
			found, err := utils.GetCache(ctx, rdb, cacheKey, &results)
			// If found in cache, return it
			if err == nil && found {
				c.JSON(http.StatusOK, gin.H{"results": results, "cached": true})
				return
			}
		}
		// If not in cache, fetch through the workflow service
		results, err := list(c.Request.Context(), username)
		if err != nil {
			// Unknown user maps to not found
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch results"})
			return
		}
		// Cache the listing for 60 seconds
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, results, 60*time.Second)
		}
		c.JSON(http.StatusOK, gin.H{"results": results, "cached": false}) // Return the listing
	}
}
