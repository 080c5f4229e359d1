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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/utils"

	"rentix_backend/internals/configs"
	database "rentix_backend/internals/databases"
	paymentsvc "rentix_backend/internals/features/finance/payments/service"
	notifsvc "rentix_backend/internals/features/notifications/service"
	helper "rentix_backend/internals/helpers"
	"rentix_backend/internals/middlewares"
	"rentix_backend/internals/route"
	"rentix_backend/internals/scheduler"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	database.TunePool()
	database.Migrate()
	database.WarmUpQueries()

	if paymentsvc.InitGateway() {
		log.Println("✅ Gateway de pagamento (Midtrans) configurado")
	} else {
		log.Println("⚠️ MIDTRANS_SERVER_KEY ausente, checkout desabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Rentix API",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromFiberError(c, err)
		},
	})

	app.Use(requestid.New(requestid.Config{Generator: utils.UUID}))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	sender := notifsvc.NewSender(database.DB)
	route.SetupRoutes(app, database.DB, sender)

	cronRunner := scheduler.Start(database.DB, sender)

	// Shutdown gracioso: para o cron, espera as requisições em voo e fecha.
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Println("🛑 Encerrando...")
		ctx := cronRunner.Stop()
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(15 * time.Second); err != nil {
			log.Printf("shutdown err: %v", err)
		}
	}()

	port := configs.GetEnv("PORT", "8080")
	log.Printf("🚀 Rentix API ouvindo na porta %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("❌ Servidor encerrou com erro: %v", err)
	}
}
