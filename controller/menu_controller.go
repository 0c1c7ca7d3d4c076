package controller

import (
	"cafe-backend/menu"

	"github.com/gofiber/fiber/v2"
)

type MenuController struct{}

func (mc *MenuController) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": menu.All()})
}

func (mc *MenuController) Search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(400).JSON(fiber.Map{"error": "q query parameter required"})
	}
	results := menu.Search(q)
	if results == nil {
		results = []menu.Product{}
	}
	return c.JSON(fiber.Map{"items": results, "count": len(results)})
}

func (mc *MenuController) ByCategory(c *fiber.Ctx) error {
	category := c.Params("category")
	products := menu.ByCategory(category)
	if products == nil {
		return c.JSON(fiber.Map{"items": []menu.Product{}, "message": "no products found in category: " + category})
	}
	return c.JSON(fiber.Map{"items": products})
}
