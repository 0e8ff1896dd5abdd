package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"PayPalReconciler/internal/domain/order"

	"github.com/gin-gonic/gin"
)

type orderReader interface {
	FindOrderByID(ctx context.Context, id string) (*order.Order, error)
}

type OrderHandler struct {
	orders orderReader
	events order.EventSink
	logger *slog.Logger
}

func NewOrderHandler(orders orderReader, events order.EventSink, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, events: events, logger: logger}
}

func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("order_id")

	res, err := h.orders.FindOrderByID(c.Request.Context(), orderID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "Failed to load order",
			slog.String("order_id", orderID), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if res == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "order not found"})
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetEvents handles GET /orders/:order_id/events?kinds=...&cursor=...&limit=...
func (h *OrderHandler) GetEvents(c *gin.Context) {
	var query order.OrderEventQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	query.OrderIDs = []string{c.Param("order_id")}

	res, err := h.events.GetOrderEvents(c.Request.Context(), query)
	if errors.Is(err, order.ErrInvalidCursor) {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "Failed to load order events",
			slog.String("order_id", c.Param("order_id")), slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
