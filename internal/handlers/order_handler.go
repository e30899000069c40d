package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// OrderCreatedResponse is returned by a successful order submission
type OrderCreatedResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	req.Items = models.NormalizeJSONValue(req.Items)

	// An accepted order is stored even if the client disconnects mid-request
	ctx := context.WithoutCancel(r.Context())

	order, err := h.orderService.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) {
			h.log.Warn("rejected order", "error", err)
			WriteError(w, http.StatusBadRequest, orderErrorMessage(err), h.log)
			return
		}

		h.log.Error("failed to create order", "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternalError, h.log)
		return
	}

	h.log.Info("order created successfully", "order_id", order.ID, "lessons_count", len(order.LessonIDs))
	WriteJSON(w, http.StatusCreated, OrderCreatedResponse{
		Message: "Order created successfully",
		OrderID: order.ID,
	}, h.log)
}

// orderErrorMessage strips the sentinel prefix from validation errors
func orderErrorMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidOrder.Error()+": ")
	if msg == "" || msg == err.Error() {
		return "Invalid order"
	}
	return "Invalid order: " + msg
}
