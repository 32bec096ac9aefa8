package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"almanar_backend/internals/configs"
	database "almanar_backend/internals/databases"
	paymentService "almanar_backend/internals/features/finance/payments/service"
	authScheduler "almanar_backend/internals/features/users/auth/scheduler"
	ossHelper "almanar_backend/internals/helpers/oss"
	"almanar_backend/internals/middlewares"
	"almanar_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	database.PrewarmSchemaMeta(database.DB)
	database.ConnectRedis()

	app := fiber.New(fiber.Config{
		AppName:      "almanar-backend",
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	var oss *ossHelper.OSSService
	if svc, err := ossHelper.NewOSSServiceFromEnv("almanar"); err != nil {
		log.Printf("[WARN] OSS disabled: %v", err)
	} else {
		oss = svc
	}

	paymentService.InitMidtrans()
	authScheduler.StartTokenCleanupScheduler(database.DB)

	route.SetupRoutes(app, database.DB, oss)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Println("🛑 shutting down ...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	port := configs.GetEnv("PORT", "8080")
	log.Printf("🚀 almanar-backend listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ server stopped: %v", err)
	}
}
