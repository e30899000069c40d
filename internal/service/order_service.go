package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/models"
	"github.com/Lixing-Zhang/lesson-storefront/backend/internal/repository"
)

// OrderService handles order business logic
type OrderService struct {
	orderRepo repository.OrderRepository
	validate  *validator.Validate
	now       func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)

	return &OrderService{
		orderRepo: orderRepo,
		validate:  validate,
		now:       time.Now,
	}
}

// CreateOrder validates req and persists it as a new order.
// Lesson references are not checked against the lesson collection, and
// repeated requests create repeated orders.
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Order, error) {
	if err := s.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidOrder, describeValidation(validationErrs))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidOrder, err)
	}

	order := &models.Order{
		ID:        generateOrderID(),
		Name:      req.Name,
		Phone:     req.Phone,
		LessonIDs: req.LessonIDs,
		Spaces:    req.Spaces,
		Items:     req.Items,
		CreatedAt: s.now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}

func describeValidation(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", e.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must contain at least %s item(s)", e.Field(), e.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", e.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}
