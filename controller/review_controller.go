package controller

import (
	"math"
	"strconv"
	"time"

	"cafe-backend/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReviewController struct {
	DB *gorm.DB
}

// Submit upserts the caller's review for a product.
func (rc *ReviewController) Submit(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		ProductID  string `json:"product_id"`
		Rating     int    `json:"rating"`
		ReviewText string `json:"review_text"`
		OrderID    string `json:"order_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "product_id required"})
	}
	if body.Rating < 1 || body.Rating > 5 {
		return c.Status(400).JSON(fiber.Map{"error": "rating must be between 1 and 5"})
	}

	now := time.Now()
	var review model.Review
	err := rc.DB.Where("user_id = ? AND product_id = ?", userID, body.ProductID).First(&review).Error
	if err == gorm.ErrRecordNotFound {
		review = model.Review{
			UserID: userID, ProductID: body.ProductID, Rating: body.Rating,
			ReviewText: body.ReviewText, OrderID: body.OrderID,
			CreatedAt: now, UpdatedAt: now,
		}
		if err := rc.DB.Create(&review).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "failed to submit review"})
		}
		return c.JSON(fiber.Map{"status": "success", "message": "review submitted successfully"})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load review"})
	}

	review.Rating = body.Rating
	review.ReviewText = body.ReviewText
	review.OrderID = body.OrderID
	review.UpdatedAt = now
	if err := rc.DB.Save(&review).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update review"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "review submitted successfully"})
}

func (rc *ReviewController) ByProduct(c *fiber.Ctx) error {
	productID := c.Params("productID")
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if limit <= 0 {
		limit = 20
	}

	var total int64
	var avg float64
	rc.DB.Model(&model.Review{}).Where("product_id = ?", productID).Count(&total)
	rc.DB.Model(&model.Review{}).Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").Scan(&avg)

	var reviews []model.Review
	if err := rc.DB.Where("product_id = ?", productID).
		Order("created_at DESC").Limit(limit).Offset(offset).
		Find(&reviews).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch reviews"})
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	return c.JSON(fiber.Map{
		"product_id":     productID,
		"average_rating": math.Round(avg*10) / 10,
		"total_reviews":  total,
		"reviews":        reviews,
	})
}

func (rc *ReviewController) ByUser(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit <= 0 {
		limit = 50
	}

	var reviews []model.Review
	if err := rc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&reviews).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch reviews"})
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return c.JSON(reviews)
}

// Stats returns the rating distribution, for one product or overall.
func (rc *ReviewController) Stats(c *fiber.Ctx) error {
	productID := c.Query("product_id")

	q := rc.DB.Model(&model.Review{})
	if productID != "" {
		q = q.Where("product_id = ?", productID)
	}

	var row struct {
		Total int64
		Avg   float64
		Min   int
		Max   int
		Five  int64
		Four  int64
		Three int64
		Two   int64
		One   int64
	}
	err := q.Select(`
		COUNT(*) AS total,
		COALESCE(AVG(rating), 0) AS avg,
		COALESCE(MIN(rating), 0) AS min,
		COALESCE(MAX(rating), 0) AS max,
		SUM(CASE WHEN rating = 5 THEN 1 ELSE 0 END) AS five,
		SUM(CASE WHEN rating = 4 THEN 1 ELSE 0 END) AS four,
		SUM(CASE WHEN rating = 3 THEN 1 ELSE 0 END) AS three,
		SUM(CASE WHEN rating = 2 THEN 1 ELSE 0 END) AS two,
		SUM(CASE WHEN rating = 1 THEN 1 ELSE 0 END) AS one`).
		Scan(&row).Error
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to fetch stats"})
	}

	return c.JSON(fiber.Map{
		"total_reviews":  row.Total,
		"average_rating": math.Round(row.Avg*10) / 10,
		"min_rating":     row.Min,
		"max_rating":     row.Max,
		"distribution": fiber.Map{
			"5_stars": row.Five,
			"4_stars": row.Four,
			"3_stars": row.Three,
			"2_stars": row.Two,
			"1_star":  row.One,
		},
	})
}

func (rc *ReviewController) Delete(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid id"})
	}

	var review model.Review
	if err := rc.DB.First(&review, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "review not found"})
	}
	if review.UserID != userID {
		return c.Status(403).JSON(fiber.Map{"error": "not the review author"})
	}

	if err := rc.DB.Delete(&review).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to delete review"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "review deleted successfully"})
}
