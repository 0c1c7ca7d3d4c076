package controller

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cafe-backend/kafka"
	"cafe-backend/mailer"
	"cafe-backend/model"
	"cafe-backend/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthController struct {
	DB        *gorm.DB
	Mailer    *mailer.Mailer
	Producer  *kafka.Producer
	JWTSecret string
}

const otpTTL = 10 * time.Minute

func (ac *AuthController) issueToken(u model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"exp":   time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ac.JWTSecret))
}

// SendOTP starts registration: the email must not be taken yet.
func (ac *AuthController) SendOTP(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	if !emailPattern.MatchString(email) {
		return c.Status(400).JSON(fiber.Map{"error": "invalid email format"})
	}

	var existing model.User
	if err := ac.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "email already registered, please login instead"})
	}

	code := service.GenerateOTP()
	now := time.Now()
	otp := model.OTPCode{Email: email, Code: code, CreatedAt: now, ExpiresAt: now.Add(otpTTL)}
	if err := ac.DB.Create(&otp).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to store otp"})
	}

	go ac.Mailer.SendRegistrationOTP(email, code)

	return c.JSON(fiber.Map{"status": "success", "message": "OTP sent to email", "email": email})
}

// VerifyOTP completes registration against the newest unconsumed code.
func (ac *AuthController) VerifyOTP(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		OTPCode  string `json:"otp_code"`
		FullName string `json:"full_name"`
		Username string `json:"username"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	code := strings.TrimSpace(body.OTPCode)
	if body.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "password is required"})
	}

	var otp model.OTPCode
	err := ac.DB.Where("email = ? AND code = ? AND verified = ?", email, code, false).
		Order("created_at DESC").First(&otp).Error
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid or expired OTP"})
	}
	if time.Now().After(otp.ExpiresAt) {
		return c.Status(400).JSON(fiber.Map{"error": "OTP expired"})
	}

	var existing model.User
	if err := ac.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return c.Status(400).JSON(fiber.Map{"error": "email already registered, please login instead"})
	}

	username := strings.ToLower(strings.TrimSpace(body.Username))
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	if err := ac.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		// derived or requested name is taken
		if body.Username != "" {
			return c.Status(400).JSON(fiber.Map{"error": "username already taken"})
		}
		username = fmt.Sprintf("%s%s", username, service.GenerateOTP()[:4])
	}
	if body.Phone != "" {
		if err := ac.DB.Where("phone = ?", body.Phone).First(&existing).Error; err == nil {
			return c.Status(400).JSON(fiber.Map{"error": "phone number already registered"})
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to hash password"})
	}

	user := model.User{
		Email:        email,
		Username:     username,
		FullName:     body.FullName,
		Phone:        body.Phone,
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to create user"})
	}

	ac.DB.Model(&model.OTPCode{}).
		Where("email = ? AND code = ?", email, code).
		Update("verified", true)

	ac.Producer.PublishUserCreated(map[string]interface{}{
		"event_type": "user.created",
		"data": map[string]interface{}{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.FullName,
		},
	})

	token, err := ac.issueToken(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to sign token"})
	}

	return c.JSON(fiber.Map{
		"status":   "success",
		"user_id":  user.ID,
		"email":    user.Email,
		"name":     user.FullName,
		"username": user.Username,
		"phone":    user.Phone,
		"token":    token,
	})
}

// Login accepts email or username.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var body struct {
		Identifier string `json:"identifier"`
		Email      string `json:"email"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	identifier := strings.ToLower(strings.TrimSpace(body.Identifier))
	if identifier == "" {
		identifier = strings.ToLower(strings.TrimSpace(body.Email))
	}
	if identifier == "" {
		return c.Status(400).JSON(fiber.Map{"error": "email or username is required"})
	}

	var user model.User
	err := ac.DB.Where("email = ? OR username = ?", identifier, identifier).First(&user).Error
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		return c.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	token, err := ac.issueToken(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to sign token"})
	}

	return c.JSON(fiber.Map{
		"status":   "success",
		"user_id":  user.ID,
		"email":    user.Email,
		"name":     user.FullName,
		"username": user.Username,
		"phone":    user.Phone,
		"token":    token,
	})
}

// Me returns the authenticated user's detail including balance.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(uint)

	var user model.User
	if err := ac.DB.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "user not found"})
	}

	return c.JSON(fiber.Map{
		"user_id":  user.ID,
		"email":    user.Email,
		"name":     user.FullName,
		"phone":    user.Phone,
		"balance":  user.Balance,
		"username": user.Username,
	})
}

// SendResetOTP mails a password-reset code to a registered address.
func (ac *AuthController) SendResetOTP(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	var user model.User
	if err := ac.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "user not found"})
	}

	code := service.GenerateOTP()
	now := time.Now()
	otp := model.OTPCode{Email: email, Code: code, CreatedAt: now, ExpiresAt: now.Add(otpTTL)}
	if err := ac.DB.Create(&otp).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to store otp"})
	}

	go ac.Mailer.SendResetOTP(email, code)

	return c.JSON(fiber.Map{"status": "success", "message": "OTP sent to email", "email": email})
}

// ResetPassword sets a new password after OTP verification.
func (ac *AuthController) ResetPassword(c *fiber.Ctx) error {
	var body struct {
		Email       string `json:"email"`
		OTPCode     string `json:"otp_code"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid payload"})
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))
	code := strings.TrimSpace(body.OTPCode)
	if len(body.NewPassword) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "password must be at least 6 characters"})
	}

	var otp model.OTPCode
	err := ac.DB.Where("email = ? AND code = ? AND verified = ?", email, code, false).
		Order("created_at DESC").First(&otp).Error
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid or expired OTP"})
	}
	if time.Now().After(otp.ExpiresAt) {
		return c.Status(400).JSON(fiber.Map{"error": "OTP expired"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to hash password"})
	}

	if err := ac.DB.Model(&model.User{}).Where("email = ?", email).
		Update("password_hash", string(hashed)).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to update password"})
	}
	ac.DB.Model(&model.OTPCode{}).
		Where("email = ? AND code = ?", email, code).
		Update("verified", true)

	return c.JSON(fiber.Map{"status": "success", "message": "password reset successfully"})
}
