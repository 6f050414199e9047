package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/apperrors"
	"github.com/mamadbah2/flockbook/internal/validation"
)

// respondError maps a service error onto exactly one JSON error response and one log line.
func respondError(c *gin.Context, logger *zap.Logger, err error, notFoundMessage string) {
	switch {
	case validation.IsValidationError(err):
		logger.Warn("rejected payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("record not found", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	default:
		logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": gatewayMessage(err)})
	}
}

// gatewayMessage passes the database's own message through when there is one.
func gatewayMessage(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Message
	}
	if err == nil {
		return "Unknown error"
	}
	return err.Error()
}
