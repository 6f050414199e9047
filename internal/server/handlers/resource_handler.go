package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
	"github.com/mamadbah2/flockbook/internal/validation"
)

// RecordStore is the repository contract shared by every CRUD resource.
type RecordStore[T any] interface {
	List(ctx context.Context) ([]*T, error)
	Create(ctx context.Context, rec *T) (*T, error)
	Update(ctx context.Context, id int64, rec *T) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// ResourceHandler adapts a RecordStore to the four REST routes of one resource.
type ResourceHandler[T any] struct {
	store  RecordStore[T]
	label  string
	logger *zap.Logger
}

// NewResourceHandler builds the handler. label names one record in responses, e.g. "Farm".
func NewResourceHandler[T any](store RecordStore[T], label string, logger *zap.Logger) *ResourceHandler[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceHandler[T]{store: store, label: label, logger: logger}
}

// Register mounts GET/POST on the group root and PUT/DELETE on /:id.
func (h *ResourceHandler[T]) Register(rg gin.IRoutes) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List returns every record of the resource.
func (h *ResourceHandler[T]) List(c *gin.Context) {
	records, err := h.store.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, h.notFound())
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create validates the payload and inserts it.
func (h *ResourceHandler[T]) Create(c *gin.Context) {
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	created, err := h.store.Create(c.Request.Context(), rec)
	if err != nil {
		respondError(c, h.logger, err, h.notFound())
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update validates the payload and overwrites the record with the path id.
func (h *ResourceHandler[T]) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	rec, ok := h.bind(c)
	if !ok {
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, rec)
	if err != nil {
		respondError(c, h.logger, err, h.notFound())
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes the record with the path id.
func (h *ResourceHandler[T]) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, h.notFound())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s deleted successfully", h.label)})
}

func (h *ResourceHandler[T]) bind(c *gin.Context) (*T, bool) {
	rec := new(T)
	if err := c.ShouldBindJSON(rec); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return nil, false
	}

	if err := validation.Struct(rec); err != nil {
		respondError(c, h.logger, err, h.notFound())
		return nil, false
	}

	if ref, ok := any(rec).(models.AnimalReference); ok {
		validation.NormalizeAnimalRef(ref)
	}
	return rec, true
}

func (h *ResourceHandler[T]) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("invalid id", zap.String("id", c.Param("id")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func (h *ResourceHandler[T]) notFound() string {
	return h.label + " not found"
}
