package main

import (
	"log"
	"strings"

	"magacin-backend/internal/admin"
	"magacin-backend/internal/auth"
	"magacin-backend/internal/config"
	"magacin-backend/internal/dashboard"
	"magacin-backend/internal/database"
	"magacin-backend/internal/inventory"
	"magacin-backend/internal/models"
	"magacin-backend/internal/orders"
	"magacin-backend/internal/supplier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	svc := orders.NewService(orders.NewGormStore(database.DB))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Neočekivana greška:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Neočekivana greška servera",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Javne rute
	api.Post("/auth/register", auth.RegisterOwnerHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Sve ostalo traži važeći token
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Narudžbenice. RBAC po operaciji živi u orders servisu, ruta samo
	// traži prijavljenog korisnika.
	protected.Post("/narudzbenice", orders.CreateOrderHandler(svc))
	protected.Get("/narudzbenice", orders.ListOrdersHandler(svc))
	protected.Get("/narudzbenice/:id", orders.GetOrderHandler(svc))
	protected.Patch("/narudzbenice/:id/status", orders.ChangeStatusHandler(svc))
	protected.Delete("/narudzbenice/:id", orders.DeleteOrderHandler(svc))

	// Proizvodi: čitanje za sve prijavljene, izmene samo vlasnik
	protected.Get("/proizvodi", inventory.ListProductsHandler())

	ownerRoutes := protected.Group("", auth.RequireRole(models.RoleOwner))
	ownerRoutes.Post("/proizvodi", inventory.CreateProductHandler())
	ownerRoutes.Post("/proizvodi/uvoz", inventory.ImportProductsHandler())
	ownerRoutes.Put("/proizvodi/:id", inventory.UpdateProductHandler())
	ownerRoutes.Delete("/proizvodi/:id", inventory.DeleteProductHandler())

	// :id posle statične /uvoz rute da se ne preklope
	protected.Get("/proizvodi/:id", inventory.GetProductHandler())

	// Lager: vlasnik i radnik
	lagerRoutes := protected.Group("/lager", auth.RequireRole(models.RoleOwner, models.RoleWorker))
	lagerRoutes.Get("", inventory.LagerHandler(cfg))
	lagerRoutes.Get("/obavestenja", inventory.LowStockHandler(cfg))

	// Dobavljači
	protected.Get("/dobavljaci", supplier.ListSuppliersHandler())
	ownerRoutes.Post("/dobavljaci", supplier.CreateSupplierHandler())
	ownerRoutes.Delete("/dobavljaci/:id", supplier.DeleteSupplierHandler())

	// Korisnici i pregledi, samo vlasnik
	ownerRoutes.Get("/korisnici", admin.ListUsersHandler())
	ownerRoutes.Post("/korisnici", admin.CreateUserHandler())
	ownerRoutes.Delete("/korisnici/:id", admin.DeleteUserHandler())

	ownerRoutes.Get("/dashboard", dashboard.DashboardHandler(cfg))
	ownerRoutes.Get("/analitika/profit", dashboard.ProfitHandler())

	log.Printf("Server sluša na portu %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("Server nije mogao da se pokrene: %v", err)
	}
}
