package routes

import (
	"database/sql"

	"cafe-backend/controller"
	"cafe-backend/kafka"
	"cafe-backend/mailer"
	"cafe-backend/service"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	SQLDB     *sql.DB
	Redis     *redis.Client
	Producer  *kafka.Producer
	Mailer    *mailer.Mailer
	JWTSecret string
}

// Register wires every route group onto the app.
func Register(app *fiber.App, d Deps, auth fiber.Handler) {
	svc := service.NewOrderService(d.SQLDB, d.Producer, d.Redis, d.Mailer)

	api := app.Group("/api")

	registerAuthRoutes(api, d, auth)
	registerMenuRoutes(api)
	registerCartRoutes(api, d, auth)
	registerOrderRoutes(api, d, svc, auth)
	registerPaymentRoutes(api, svc, auth)
	registerProfileRoutes(api, d, auth)
	registerFavoriteRoutes(api, d, auth)
	registerReviewRoutes(api, d, auth)
	registerTransactionRoutes(api, d, auth)
}

func registerAuthRoutes(api fiber.Router, d Deps, auth fiber.Handler) {
	ac := &controller.AuthController{DB: d.DB, Mailer: d.Mailer, Producer: d.Producer, JWTSecret: d.JWTSecret}

	a := api.Group("/auth")
	a.Post("/send-otp", ac.SendOTP)
	a.Post("/verify-otp", ac.VerifyOTP)
	a.Post("/login", ac.Login)
	a.Get("/me", auth, ac.Me)
	a.Post("/send-reset-otp", ac.SendResetOTP)
	a.Post("/reset-password", ac.ResetPassword)
}

func registerMenuRoutes(api fiber.Router) {
	mc := &controller.MenuController{}

	m := api.Group("/menu")
	m.Get("/", mc.List)
	m.Get("/search", mc.Search)
	m.Get("/:category", mc.ByCategory)
}

func registerCartRoutes(api fiber.Router, d Deps, auth fiber.Handler) {
	cc := &controller.CartController{DB: d.DB}

	ca := api.Group("/cart")
	ca.Post("/add", auth, cc.Add)
	ca.Get("/", auth, cc.Get)
	ca.Delete("/clear", auth, cc.Clear)
	ca.Delete("/:productID", auth, cc.Remove)
}

func registerOrderRoutes(api fiber.Router, d Deps, svc *service.OrderService, auth fiber.Handler) {
	oc := &controller.OrderController{DB: d.DB, Redis: d.Redis, Svc: svc}

	api.Post("/checkout", auth, oc.Checkout)
	api.Post("/promo/validate", oc.ValidatePromo)
	api.Get("/frequent-items", auth, oc.FrequentItems)

	o := api.Group("/orders")
	o.Get("/", auth, oc.List)
	o.Post("/:id/cancel", auth, oc.Cancel)
	o.Post("/:id/received", auth, oc.Received)
}

func registerPaymentRoutes(api fiber.Router, svc *service.OrderService, auth fiber.Handler) {
	pc := &controller.PaymentController{Svc: svc}

	p := api.Group("/payment")
	p.Post("/send-otp", auth, pc.SendOTP)
	p.Post("/verify-otp", auth, pc.VerifyOTP)
}

func registerProfileRoutes(api fiber.Router, d Deps, auth fiber.Handler) {
	pc := &controller.ProfileController{DB: d.DB}

	u := api.Group("/user")
	u.Post("/change-email", auth, pc.ChangeEmail)
	u.Post("/change-username", auth, pc.ChangeUsername)
	u.Post("/change-phone", auth, pc.ChangePhone)
	u.Post("/change-password", auth, pc.ChangePassword)
	u.Get("/balance", auth, pc.Balance)
}

func registerFavoriteRoutes(api fiber.Router, d Deps, auth fiber.Handler) {
	fc := &controller.FavoriteController{DB: d.DB}

	f := api.Group("/favorites")
	f.Post("/add", auth, fc.Add)
	f.Post("/remove", auth, fc.RemovePost)
	f.Delete("/:productID", auth, fc.Remove)
	f.Get("/", auth, fc.List)
}

func registerReviewRoutes(api fiber.Router, d Deps, auth fiber.Handler) {
	rc := &controller.ReviewController{DB: d.DB}

	r := api.Group("/reviews")
	r.Post("/submit", auth, rc.Submit)
	r.Get("/product/:productID", rc.ByProduct)
	r.Get("/user", auth, rc.ByUser)
	r.Get("/stats", rc.Stats)
	r.Delete("/:id", auth, rc.Delete)
}

func registerTransactionRoutes(api fiber.Router, d Deps, auth fiber.Handler) {
	tc := &controller.TransactionController{DB: d.DB}

	api.Get("/transactions", auth, tc.List)
}
