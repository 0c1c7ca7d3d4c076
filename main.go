package main

import (
	"database/sql"
	"log"
	"os"

	"cafe-backend/cache"
	"cafe-backend/kafka"
	"cafe-backend/mailer"
	"cafe-backend/model"
	"cafe-backend/routes"

	"cafe-backend/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB    *gorm.DB
	SQLDB *sql.DB
)

// ======================
// INIT DATABASE
// ======================
func initDB() {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	pass := getEnv("DB_PASS", "postgres")
	name := getEnv("DB_NAME", "cafedb")

	dsn := "host=" + host +
		" user=" + user +
		" password=" + pass +
		" dbname=" + name +
		" port=" + port +
		" sslmode=disable TimeZone=UTC"

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect cafe db:", err)
	}

	// Auto migrate
	if err := DB.AutoMigrate(
		&model.User{},
		&model.OTPCode{},
		&model.Cart{},
		&model.Order{},
		&model.PaymentOTP{},
		&model.PromoCode{},
		&model.Transaction{},
		&model.Favorite{},
		&model.Review{},
		&model.FrequentItem{},
	); err != nil {
		log.Fatal(err)
	}

	SQLDB, err = DB.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB from gorm:", err)
	}
}

// seedPromoCodes inserts the launch promos once on an empty table.
func seedPromoCodes() {
	var count int64
	DB.Model(&model.PromoCode{}).Count(&count)
	if count > 0 {
		return
	}

	promos := []model.PromoCode{
		{Code: "SAVE10", DiscountPercent: 10},
		{Code: "SAVE20", DiscountPercent: 20, MaxUses: 100},
		{Code: "WELCOME5", DiscountPercent: 5},
	}
	if err := DB.Create(&promos).Error; err != nil {
		log.Println("seed promo codes:", err)
	}
}

func main() {
	initDB()
	seedPromoCodes()

	// kafka producer + consumer
	producer := kafka.NewProducer()
	consumer := kafka.NewConsumer()

	// redis
	rdb := cache.Connect()

	// smtp
	m := mailer.New()

	consumer.Consume("payment.paid", kafka.PaymentPaidHandler(m))

	jwtSecret := getEnv("JWT_SECRET", "supersecret")

	app := fiber.New()
	app.Use(logger.New())

	routes.Register(app, routes.Deps{
		DB:        DB,
		SQLDB:     SQLDB,
		Redis:     rdb,
		Producer:  producer,
		Mailer:    m,
		JWTSecret: jwtSecret,
	}, middleware.AuthRequired(jwtSecret))

	port := getEnv("PORT", "3000")
	log.Println("HTTP server running on port " + port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatal("fiber error:", err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
