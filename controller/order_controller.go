package controller

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"cafe-backend/cache"
	"cafe-backend/model"
	"cafe-backend/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type OrderController struct {
	DB    *gorm.DB
	Redis *redis.Client
	Svc   *service.OrderService
}

const orderCacheTTL = 5 * time.Minute

// Checkout creates an order from the submitted line items.
func (oc *OrderController) Checkout(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		Items            []model.LineItem `json:"items"`
		PaymentMethod    string           `json:"payment_method"`
		PromoCode        string           `json:"promo_code"`
		CustomerName     string           `json:"customer_name"`
		CustomerPhone    string           `json:"customer_phone"`
		DeliveryDistrict string           `json:"delivery_district"`
		DeliveryWard     string           `json:"delivery_ward"`
		DeliveryStreet   string           `json:"delivery_street"`
		SpecialNotes     string           `json:"special_notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.PaymentMethod != model.PaymentBalance && body.PaymentMethod != model.PaymentCOD {
		return c.Status(400).JSON(fiber.Map{"error": "payment_method must be balance or cash_on_delivery"})
	}

	res, err := oc.Svc.Checkout(c.Context(), service.CheckoutInput{
		UserID:           userID,
		Items:            body.Items,
		PaymentMethod:    body.PaymentMethod,
		PromoCode:        body.PromoCode,
		CustomerName:     body.CustomerName,
		CustomerPhone:    body.CustomerPhone,
		DeliveryDistrict: body.DeliveryDistrict,
		DeliveryWard:     body.DeliveryWard,
		DeliveryStreet:   body.DeliveryStreet,
		SpecialNotes:     body.SpecialNotes,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"status":       "success",
		"order_id":     res.OrderID,
		"total":        res.Total,
		"discount":     res.Discount,
		"shipping_fee": res.ShippingFee,
		"message":      "Order created. Please confirm payment with OTP.",
	})
}

// List returns the user's order history, newest first, via the redis cache.
func (oc *OrderController) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	ctx := context.Background()
	key := cache.OrdersKey(userID)

	if oc.Redis != nil {
		if raw, err := oc.Redis.Get(ctx, key).Result(); err == nil {
			c.Set("Content-Type", "application/json")
			return c.SendString(raw)
		}
	}

	var orders []model.Order
	if err := oc.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch orders"})
	}
	if orders == nil {
		orders = []model.Order{}
	}

	payload, err := json.Marshal(fiber.Map{"orders": orders})
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to encode orders"})
	}
	if oc.Redis != nil {
		oc.Redis.Set(ctx, key, payload, orderCacheTTL)
	}

	c.Set("Content-Type", "application/json")
	return c.Send(payload)
}

// ValidatePromo is the standalone promo check; checkout applies codes itself.
func (oc *OrderController) ValidatePromo(c *fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&body); err != nil || body.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "code is required"})
	}

	promo, err := oc.Svc.ValidatePromo(c.Context(), body.Code)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":           "valid",
		"code":             promo.Code,
		"discount_percent": promo.DiscountPercent,
	})
}

func (oc *OrderController) Cancel(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	orderID := c.Params("id")

	res, err := oc.Svc.CancelOrder(c.Context(), userID, orderID)
	if err != nil {
		return serviceError(c, err)
	}

	message := "order cancelled"
	if res.Refund > 0 {
		message = "order cancelled and refunded"
	}
	return c.JSON(fiber.Map{
		"status":        "success",
		"message":       message,
		"refund_amount": res.Refund,
	})
}

func (oc *OrderController) Received(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	orderID := c.Params("id")

	if err := oc.Svc.MarkReceived(c.Context(), userID, orderID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "message": "order marked as completed"})
}

// FrequentItems returns the user's most reordered products with their
// customization, most ordered first.
func (oc *OrderController) FrequentItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	limit, err := strconv.Atoi(c.Query("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	var items []model.FrequentItem
	if err := oc.DB.Where("user_id = ?", userID).
		Order("order_count DESC, last_ordered_at DESC").
		Limit(limit).Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch frequent items"})
	}
	if items == nil {
		items = []model.FrequentItem{}
	}
	return c.JSON(fiber.Map{"items": items})
}
