package controller

import (
	"cafe-backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransactionController struct {
	DB *gorm.DB
}

// List returns the caller's balance ledger, newest first.
func (tc *TransactionController) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var transactions []model.Transaction
	if err := tc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&transactions).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch transactions"})
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return c.JSON(fiber.Map{"transactions": transactions})
}
