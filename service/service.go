// Package service implements the checkout, payment, and refund workflows as
// explicit database transactions. Handlers stay thin; every money-affecting
// effect commits atomically here.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"strings"

	"cafe-backend/cache"
	"cafe-backend/kafka"
	"cafe-backend/mailer"

	"database/sql"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type OrderService struct {
	DB       *sql.DB
	Producer *kafka.Producer
	Redis    *redis.Client
	Mailer   *mailer.Mailer
}

func NewOrderService(db *sql.DB, prod *kafka.Producer, rdb *redis.Client, m *mailer.Mailer) *OrderService {
	return &OrderService{DB: db, Producer: prod, Redis: rdb, Mailer: m}
}

// NewOrderID returns a short public order identifier.
func NewOrderID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// NewTxnID returns a ledger row identifier.
func NewTxnID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}

// GenerateOTP returns a 6-digit numeric one-time code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		log.Printf("otp: crypto/rand failed: %v", err)
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

func (s *OrderService) invalidateOrders(ctx context.Context, userID uint) {
	if s.Redis == nil {
		return
	}
	s.Redis.Del(ctx, cache.OrdersKey(userID))
}
