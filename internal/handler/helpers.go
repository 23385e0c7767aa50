package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beerich/beerich-api/internal/domain"
	"github.com/beerich/beerich-api/internal/model"
)

// maxUploadSize caps the in-memory portion of multipart form parsing
const maxUploadSize = 32 << 20 // 32 MiB

// currentUserID retrieves the authenticated user ID set by the auth middleware
func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	return userID.(string), true
}

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getQueryInt retrieves an integer query parameter with a default value
func getQueryInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	valueStr := c.Query(paramName)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}
	return value, nil
}

// parseForm parses the request body as multipart or urlencoded form data and
// returns the posted fields
func parseForm(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("invalid form data: %w", err)
	}
	return c.Request.PostForm, nil
}

// validationDetails flattens a ValidationError into response details, sorted
// by field for stable output
func validationDetails(verr *domain.ValidationError) []model.ErrorDetail {
	fields := make([]string, 0, len(verr.Fields))
	for field := range verr.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]model.ErrorDetail, 0, len(fields))
	for _, field := range fields {
		details = append(details, model.ErrorDetail{
			Field:   field,
			Message: verr.Fields[field],
		})
	}
	return details
}

// respondInvoiceError maps domain error kinds to HTTP responses. Not-found is
// reported identically whether the invoice is absent or owned by another
// user, so the API never leaks existence of foreign records.
func respondInvoiceError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		respondBadRequest(c, ErrInvalidInput, validationDetails(verr)...)
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, ErrResourceNotFound)
	default:
		respondInternalServerError(c, ErrInternalServer)
	}
}
