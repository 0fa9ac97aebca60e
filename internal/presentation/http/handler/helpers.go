package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/dto/response"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	return c.GetString("user_email")
}

// bindError renders a binding failure. Validator failures become a 422 with
// one entry per field; malformed bodies are a 400.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   jsonFieldName(fe),
				Message: fieldMessage(fe),
			})
		}
		response.ValidationError(c, fields)
		return
	}
	response.BadRequest(c, "Invalid request body")
}

func jsonFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "fueltype":
		return "must be a known fuel type"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "eqfield":
		return "must match " + strings.ToLower(fe.Param())
	}
	return "is invalid"
}

// pathID parses a typed identifier from a path parameter, answering 400 on failure
func pathID[T any](c *gin.Context, name string, parse func(string) (T, error)) (T, bool) {
	id, err := parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		var zero T
		return zero, false
	}
	return id, true
}

// queryID parses an optional typed identifier from the query string
func queryID[T any](c *gin.Context, name string, parse func(string) (T, error)) (*T, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parse(raw)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid " + name)
	}
	return &id, nil
}

// isCursorRequest reports whether the caller asked for cursor pagination
func isCursorRequest(c *gin.Context) bool {
	return c.Query("cursor") != "" || c.Query("limit") != ""
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}
	params.Validate()
	return params
}

func cursorParams(c *gin.Context) *pagination.CursorParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))

	params := &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}
	params.Validate()
	return params
}
