package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/leadcrm/backend/internal/domain/shared"
	"github.com/leadcrm/backend/internal/infrastructure/logger"
	"github.com/leadcrm/backend/internal/interfaces/http/dto"
	"github.com/leadcrm/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Paging bounds the limit query parameter of list endpoints
type Paging struct {
	DefaultPageSize int
	MaxPageSize     int
}

// resolve applies the default to an unset limit and clamps it to the max
func (p Paging) resolve(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = p.DefaultPageSize
	}
	if limit < 1 {
		limit = shared.DefaultPageSize
	}
	if p.MaxPageSize > 0 && limit > p.MaxPageSize {
		limit = p.MaxPageSize
	}
	return page, limit
}

// BaseHandler provides common handler utilities
type BaseHandler struct {
	paging Paging
}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(message, data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(message, data))
}

// SuccessWithMeta sends a page of rows with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, message string, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewListResponse(message, data, total, page, pageSize))
}

// Error sends a failure envelope, deriving the status from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	c.JSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// HandleError converts err into a failure envelope. Domain errors keep
// their code and message; anything else is logged and hidden behind a 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	log := logger.L(c.Request.Context())

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		log.Info("request rejected",
			zap.String("code", domainErr.Code),
			zap.Int("status", status),
			zap.String("reason", domainErr.Message),
		)
		c.JSON(status, dto.NewErrorResponse(domainErr.Code, domainErr.Message, middleware.GetRequestID(c)))
		return
	}

	log.Error("request failed", zap.Error(err))
	h.Error(c, dto.ErrCodeInternal, "An unexpected error occurred")
}

// bindJSON binds the request body into req, answering 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

// bindQuery binds the query string into req, answering 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.bindError(c, err)
		return false
	}
	return true
}

func (h *BaseHandler) bindError(c *gin.Context, err error) {
	if fields, ok := middleware.FormatValidationErrors(err); ok {
		details := make([]dto.ValidationDetail, len(fields))
		for i, f := range fields {
			details[i] = dto.ValidationDetail{Field: f.Field, Message: f.Message}
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(details[0].Message, middleware.GetRequestID(c), details))
		return
	}
	h.BadRequest(c, "Malformed request: "+err.Error())
}

// pathID parses the :id path parameter
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses a required UUID query parameter
func (h *BaseHandler) queryID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.Error(c, dto.ErrCodeValidation, name+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
