package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/orderly-console/internal/application/workspace"
	"github.com/jhoicas/orderly-console/internal/domain/access"
	"github.com/jhoicas/orderly-console/internal/infrastructure/metrics"
)

// AppConfig servidor fiber y middleware global.
type AppConfig struct {
	Name         string
	AllowOrigins string
	RateMax      int           // 0 = sin límite
	RateWindow   time.Duration // ventana del límite por IP
	SwaggerFile  string        // vacío = sin /docs
}

// NewApp crea la app con recover, request id, logging, CORS, rate limit, métricas, /docs y /health.
func NewApp(cfg AppConfig, m *metrics.Metrics, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(log))

	origins := strings.TrimSpace(cfg.AllowOrigins)
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		// Las credenciales viajan en la cookie de sesión; con "*" el navegador no las envía.
		AllowCredentials: origins != "" && origins != "*",
	}))

	if m != nil {
		app.Use(m.Middleware())
		app.Get("/metrics", m.Handler())
	}
	if cfg.RateMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Max:        cfg.RateMax,
			Expiration: cfg.RateWindow,
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health" || c.Path() == "/metrics"
			},
		}))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    "Orderly Console API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Registry *workspace.Registry
	Session  SessionConfig
	Services Services
	Log      zerolog.Logger
}

// Router registra las rutas de la consola.
func Router(app *fiber.App, deps RouterDeps) {
	wait := deps.Session.ResolveWait
	session := SessionMiddleware(deps.Registry, deps.Session)
	requireUser := RequireUser(wait)
	guard := RequireAccess(wait)

	authHandler := NewAuthHandler(deps.Services.Prefs, deps.Log)
	notificationsHandler := NewNotificationsHandler()
	profileHandler := NewProfileHandler()
	dashboardHandler := NewDashboardHandler()
	ordersHandler := NewOrdersHandler(deps.Services, deps.Log)
	inventoryHandler := NewInventoryHandler(deps.Services)
	invoiceHandler := NewInvoiceHandler(deps.Services)
	teamHandler := NewTeamHandler()

	app.Get(access.LoginPath, session, authHandler.LoginPage(wait))

	// API de sesión (JSON)
	api := app.Group("/api", session)
	api.Post("/login", authHandler.Login)
	api.Post("/register/send-otp", authHandler.SendRegistrationOTP)
	api.Post("/register", authHandler.CompleteRegistration)
	api.Post("/password/send-otp", authHandler.ForgotPassword)
	api.Post("/password/reset", authHandler.ResetPassword)
	api.Post("/logout", authHandler.Logout)
	api.Get("/preferences", authHandler.GetPreferences)
	api.Put("/preferences", authHandler.SetPreferences)

	api.Get("/me", requireUser, authHandler.Me)
	api.Get("/profile", requireUser, profileHandler.Get)
	api.Put("/profile", requireUser, profileHandler.Update)
	api.Post("/profile/photo", requireUser, profileHandler.UploadPhoto)

	api.Get("/notifications", requireUser, notificationsHandler.List)
	api.Post("/notifications/refresh", requireUser, notificationsHandler.Refresh)
	api.Post("/notifications/mark-all-read", requireUser, notificationsHandler.MarkAllRead)
	api.Post("/notifications/clear", requireUser, notificationsHandler.Clear)
	api.Post("/notifications/:id/read", requireUser, notificationsHandler.MarkRead)
	api.Post("/notifications/:id/unread", requireUser, notificationsHandler.MarkUnread)

	invoices := func(r fiber.Router) {
		r.Get("/orders/:id/invoice", invoiceHandler.HTML)
		r.Get("/orders/:id/invoice/pdf", invoiceHandler.PDF)
		r.Post("/orders/:id/invoice/send", invoiceHandler.Send)
		r.Get("/orders/:id/summary.pdf", invoiceHandler.Summary)
	}
	cart := func(r fiber.Router) {
		r.Get("/cart", ordersHandler.Cart)
		r.Post("/cart", ordersHandler.AddToCart)
		r.Put("/cart/:orderId/items/:productId", ordersHandler.SetQuantity)
		r.Delete("/cart/:orderId/items/:productId", ordersHandler.RemoveItem)
		r.Delete("/cart/:orderId", ordersHandler.RemoveOrder)
		r.Post("/cart/:orderId/confirm", ordersHandler.Confirm)
		r.Get("/orders", ordersHandler.History)
		r.Get("/orders/export", ordersHandler.ExportHistory)
		invoices(r)
	}

	// Tienda
	shop := app.Group("/shop", session, guard)
	shop.Get("/dashboard", dashboardHandler.Shop)
	shop.Get("/analytics", dashboardHandler.ShopAnalytics)
	cart(shop)

	// Vendedor: todo salvo la página de vínculo exige vínculo aprobado
	sales := app.Group("/sales", session, guard, RequireSalesLink())
	sales.Get("/dashboard", dashboardHandler.Sales)
	sales.Get("/link-distributor", teamHandler.LinkPage)
	sales.Post("/link-distributor", teamHandler.RequestLink)
	sales.Get("/catalog", dashboardHandler.Shop)
	cart(sales)

	// Distribuidor
	wholesale := app.Group("/wholesale", session, guard)
	wholesale.Get("/dashboard", dashboardHandler.Wholesale)
	wholesale.Get("/analytics", dashboardHandler.WholesaleAnalytics)
	wholesale.Get("/orders", ordersHandler.DistributorOrders)
	wholesale.Post("/orders/:id/advance", ordersHandler.Advance)
	invoices(wholesale)
	wholesale.Get("/inventory", inventoryHandler.List)
	wholesale.Post("/inventory", inventoryHandler.Create)
	wholesale.Post("/inventory/images", inventoryHandler.UploadImage)
	wholesale.Post("/inventory/import/preview", inventoryHandler.PreviewImport)
	wholesale.Post("/inventory/import/row", inventoryHandler.ImportRow)
	wholesale.Post("/inventory/import", inventoryHandler.ImportAll)
	wholesale.Get("/inventory/:id", inventoryHandler.GetByID)
	wholesale.Put("/inventory/:id", inventoryHandler.Update)
	wholesale.Delete("/inventory/:id", inventoryHandler.Delete)
	wholesale.Get("/sales-team", teamHandler.SalesTeam)
	wholesale.Post("/sales-team/requests/:id/approve", teamHandler.Approve)
	wholesale.Post("/sales-team/requests/:id/reject", teamHandler.Reject)
	wholesale.Delete("/sales-team/salespersons/:id", teamHandler.Unlink)

	// Administración
	admin := app.Group("/admin", session, guard)
	admin.Get("/overview", dashboardHandler.Admin)
	admin.Get("/distributors/:id/orders", ordersHandler.AdminDistributorOrders)
}
