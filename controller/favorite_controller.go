package controller

import (
	"cafe-backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type FavoriteController struct {
	DB *gorm.DB
}

func (fc *FavoriteController) Add(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id required"})
	}

	var existing model.Favorite
	if err := fc.DB.Where("user_id = ? AND product_id = ?", userID, body.ProductID).
		First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "product already in favorites"})
	}

	fav := model.Favorite{UserID: userID, ProductID: body.ProductID}
	if err := fc.DB.Create(&fav).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to add favorite"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "added to favorites"})
}

func (fc *FavoriteController) remove(c *fiber.Ctx, userID uint, productID string) error {
	res := fc.DB.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to remove favorite"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"error": "favorite not found"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "removed from favorites"})
}

func (fc *FavoriteController) RemovePost(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id required"})
	}
	return fc.remove(c, userID, body.ProductID)
}

func (fc *FavoriteController) Remove(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	return fc.remove(c, userID, c.Params("productID"))
}

func (fc *FavoriteController) List(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var favorites []model.Favorite
	if err := fc.DB.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch favorites"})
	}
	if favorites == nil {
		favorites = []model.Favorite{}
	}
	return c.JSON(favorites)
}
