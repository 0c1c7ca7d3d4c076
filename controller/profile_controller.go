package controller

import (
	"strings"

	"cafe-backend/model"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ProfileController struct {
	DB *gorm.DB
}

// verifyPassword loads the user and checks the supplied current password.
func (pc *ProfileController) verifyPassword(userID uint, password string) (*model.User, int, string) {
	var user model.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return nil, 404, "user not found"
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, 401, "invalid password"
	}
	return &user, 0, ""
}

func (pc *ProfileController) ChangeEmail(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		NewEmail string `json:"new_email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	email := strings.ToLower(strings.TrimSpace(body.NewEmail))
	if !emailPattern.MatchString(email) {
		return c.Status(400).JSON(fiber.Map{"error": "invalid email format"})
	}

	user, code, msg := pc.verifyPassword(userID, body.Password)
	if user == nil {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	var existing model.User
	if err := pc.DB.Where("email = ? AND id != ?", email, userID).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "email already in use"})
	}

	if err := pc.DB.Model(user).Update("email", email).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update email"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "email updated successfully"})
}

func (pc *ProfileController) ChangeUsername(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		NewUsername string `json:"new_username"`
		Password    string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	username := strings.ToLower(strings.TrimSpace(body.NewUsername))
	if username == "" {
		return c.Status(400).JSON(fiber.Map{"error": "new_username required"})
	}

	user, code, msg := pc.verifyPassword(userID, body.Password)
	if user == nil {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	var existing model.User
	if err := pc.DB.Where("username = ? AND id != ?", username, userID).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "username already taken"})
	}

	if err := pc.DB.Model(user).Update("username", username).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update username"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "username updated successfully"})
}

func (pc *ProfileController) ChangePhone(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		NewPhone string `json:"new_phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if body.NewPhone == "" {
		return c.Status(400).JSON(fiber.Map{"error": "new_phone required"})
	}

	user, code, msg := pc.verifyPassword(userID, body.Password)
	if user == nil {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	var existing model.User
	if err := pc.DB.Where("phone = ? AND id != ?", body.NewPhone, userID).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "phone number already registered with another account"})
	}

	if err := pc.DB.Model(user).Update("phone", body.NewPhone).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update phone"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "phone updated successfully"})
}

func (pc *ProfileController) ChangePassword(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var body struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}
	if len(body.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "password must be at least 6 characters"})
	}

	user, code, msg := pc.verifyPassword(userID, body.CurrentPassword)
	if user == nil {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to hash password"})
	}
	if err := pc.DB.Model(user).Update("password_hash", string(hashed)).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update password"})
	}
	return c.JSON(fiber.Map{"status": "success", "message": "password changed successfully"})
}

func (pc *ProfileController) Balance(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user model.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "user not found"})
	}
	return c.JSON(fiber.Map{"balance": user.Balance})
}
