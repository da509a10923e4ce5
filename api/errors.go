package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	Logger "github.com/feather-works/feather-backend/utils/log"
)

// FieldErrors maps a request field to its validation messages, mirroring the
// per-field error bodies clients get on 400 responses.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func abortNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"detail": "You do not have permission to perform this action.",
	})
}

func abortValidation(c *gin.Context, fields FieldErrors) {
	c.AbortWithStatusJSON(http.StatusBadRequest, fields)
}

func abortMalformedBody(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Malformed request body."})
}

func abortServerError(c *gin.Context, err error) {
	Logger.Log.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
}

// isUniqueViolation reports whether err is a storage-layer uniqueness
// violation. Most drivers are covered by gorm's error translation; raw
// postgres errors that predate translation are matched by SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
