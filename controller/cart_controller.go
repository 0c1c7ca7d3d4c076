package controller

import (
	"time"

	"cafe-backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CartController struct {
	DB *gorm.DB
}

func (cc *CartController) Add(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var item model.CartItem
	if err := c.BodyParser(&item); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if item.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id required"})
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	if item.Size == "" {
		item.Size = "M"
	}

	var cart model.Cart
	err := cc.DB.Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = model.Cart{UserID: userID, Items: []model.CartItem{item}, UpdatedAt: time.Now()}
		if err := cc.DB.Create(&cart).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to create cart"})
		}
		return c.JSON(fiber.Map{"status": "success", "message": "added to cart"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load cart"})
	}

	cart.Items = append(cart.Items, item)
	cart.UpdatedAt = time.Now()
	if err := cc.DB.Save(&cart).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update cart"})
	}

	return c.JSON(fiber.Map{"status": "success", "message": "added to cart"})
}

func (cc *CartController) Get(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var cart model.Cart
	if err := cc.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return c.JSON(fiber.Map{"items": []model.CartItem{}})
	}
	return c.JSON(fiber.Map{"items": cart.Items})
}

func (cc *CartController) Clear(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	cc.DB.Where("user_id = ?", userID).Delete(&model.Cart{})
	return c.JSON(fiber.Map{"status": "success", "message": "cart cleared"})
}

// Remove drops the first cart line matching the product.
func (cc *CartController) Remove(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	productID := c.Params("productID")

	var cart model.Cart
	if err := cc.DB.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "cart not found"})
	}

	found := false
	for i, item := range cart.Items {
		if item.ProductID == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return c.Status(404).JSON(fiber.Map{"error": "item not found in cart"})
	}

	if len(cart.Items) == 0 {
		cc.DB.Delete(&cart)
	} else {
		cart.UpdatedAt = time.Now()
		if err := cc.DB.Save(&cart).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to update cart"})
		}
	}

	return c.JSON(fiber.Map{"status": "success", "message": "item removed from cart"})
}
