package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"foodstop-server/middleware"
	"foodstop-server/models"
	"foodstop-server/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"
)

var validate = validator.New()

type CreateOrderRequest struct {
	Customer_name        string             `json:"customer_name" validate:"required,min=2,max=100"`
	Phone                string             `json:"phone"`
	Email                string             `json:"email" validate:"required,email"`
	Address              string             `json:"address"`
	Delivery_type        string             `json:"delivery_type" validate:"required,eq=pickup|eq=door-delivery"`
	Items                []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Coupon_code          string             `json:"coupon_code"`
	User_id              string             `json:"user_id"`
	Cooking_instructions string             `json:"cooking_instructions"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type OrderController struct {
	orders *services.OrderService
	coupon services.CouponConfig
}

func NewOrderController(orders *services.OrderService, coupon services.CouponConfig) *OrderController {
	return &OrderController{orders: orders, coupon: coupon}
}

func (oc *OrderController) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req CreateOrderRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order := models.Order{
			Customer_name: req.Customer_name,
			Phone:         req.Phone,
			Email:         req.Email,
			Address:       req.Address,
			Delivery_type: req.Delivery_type,
			Items:         req.Items,
		}
		if req.Cooking_instructions != "" {
			order.Cooking_instructions = &req.Cooking_instructions
		}

		caller := middleware.CallerFromContext(c)
		created, err := oc.orders.Create(ctx, &order, req.Coupon_code, req.User_id, caller)
		if err != nil {
			if errors.Is(err, services.ErrEmptyOrder) || errors.Is(err, services.ErrMissingEmail) || errors.Is(err, services.ErrInvalidItem) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order was not created"})
			return
		}
		c.JSON(http.StatusOK, created)
	}
}

func (oc *OrderController) GetOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		caller := middleware.CallerFromContext(c)
		order, err := oc.orders.GetByID(ctx, c.Param("order_id"), caller)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func (oc *OrderController) ListMyOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		caller := middleware.CallerFromContext(c)
		orders, err := oc.orders.ListForOwner(ctx, caller)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (oc *OrderController) ListAllOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		caller := middleware.CallerFromContext(c)
		orders, err := oc.orders.ListAll(ctx, caller)
		if err != nil {
			respondOrderError(c, err)
			return
		}
		if orders == nil {
			orders = []models.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func (oc *OrderController) UpdateOrderStatus() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		var req UpdateStatusRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := validate.Struct(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		caller := middleware.CallerFromContext(c)
		updated, err := oc.orders.UpdateStatus(ctx, c.Param("order_id"), req.Status, caller)
		if err != nil {
			if errors.Is(err, services.ErrInvalidStatus) || errors.Is(err, services.ErrInvalidTransition) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			respondOrderError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ValidateCoupon lets the UI preview a discount before submitting.
func (oc *OrderController) ValidateCoupon() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Code string `json:"code"`
		}
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !services.CouponValid(req.Code, oc.coupon) {
			c.JSON(http.StatusOK, gin.H{"valid": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "percentage": oc.coupon.Percentage})
	}
}

// respondOrderError keeps the denial indistinguishable: ErrForbidden covers
// both "not yours" and "does not exist" for non-admin callers, while admins
// get a real 404.
func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrForbidden.Error()})
	case errors.Is(err, services.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while processing order"})
	}
}
