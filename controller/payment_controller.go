package controller

import (
	"cafe-backend/service"

	"github.com/gofiber/fiber/v2"
)

type PaymentController struct {
	Svc *service.OrderService
}

// SendOTP issues a payment confirmation code for a pending order.
func (pc *PaymentController) SendOTP(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.OrderID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "order_id is required"})
	}

	res, err := pc.Svc.SendPaymentOTP(c.Context(), userID, body.OrderID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":   "success",
		"message":  "OTP sent to your email",
		"order_id": res.OrderID,
		"total":    res.Total,
	})
}

// VerifyOTP confirms the code and settles the order from balance.
func (pc *PaymentController) VerifyOTP(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		OrderID string `json:"order_id"`
		OTPCode string `json:"otp_code"`
	}
	if err := c.BodyParser(&body); err != nil || body.OrderID == "" || body.OTPCode == "" {
		return c.Status(400).JSON(fiber.Map{"error": "order_id and otp_code are required"})
	}

	res, err := pc.Svc.VerifyPaymentOTP(c.Context(), userID, body.OrderID, body.OTPCode)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":      "success",
		"message":     "payment successful",
		"order_id":    res.OrderID,
		"amount_paid": res.AmountPaid,
		"new_balance": res.NewBalance,
	})
}
