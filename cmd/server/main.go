package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/database"
	"github.com/iliyamo/room-reservation/internal/handler"
	"github.com/iliyamo/room-reservation/internal/queue"
	"github.com/iliyamo/room-reservation/internal/repository"
	"github.com/iliyamo/room-reservation/internal/router"
	"github.com/iliyamo/room-reservation/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis: unavailable, cache and rate limiting disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	roles := repository.NewRoleRepo(db)
	tokens := repository.NewTokenRepo(db)
	buildings := repository.NewBuildingRepo(db)
	rooms := repository.NewRoomRepo(db)
	bookings := repository.NewBookingRepo(db)
	invoices := repository.NewInvoiceRepo(db)
	files := repository.NewFileRepo(db)
	messages := repository.NewMessageRepo(db)

	// Services.
	invoiceSvc := service.NewInvoiceService(invoices, rooms, cfg.InvoiceDueDays)
	bookingSvc := service.NewBookingService(db, bookings, invoiceSvc)
	scheduleSvc := service.NewScheduleService(rooms, bookings)
	fileSvc := service.NewFileService(files)
	messageSvc := service.NewMessageService(messages, users)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, roles, tokens)
	bookingH := handler.NewBookingHandler(bookingSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc, bookingSvc)
	roomH := handler.NewRoomHandler(rooms, scheduleSvc)
	buildingH := handler.NewBuildingHandler(buildings)
	userH := handler.NewUserHandler(cfg, users, roles)
	fileH := handler.NewFileHandler(fileSvc)
	messageH := handler.NewMessageHandler(messageSvc)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret, router.Limiter(rdb))
	router.RegisterPublic(e, roomH, buildingH, cfg.JWTSecret, router.Cache(rdb))
	router.RegisterAPI(e, bookingH, invoiceH, fileH, messageH, cfg.JWTSecret)
	router.RegisterAdmin(e, userH, roomH, buildingH, cfg.JWTSecret)

	// Background booking event consumer; runs a reconnect loop forever.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer: stopped: %v", err)
		}
	}()

	// Daily overdue invoice sweep.
	reminder := service.NewReminderService(invoices)
	if err := reminder.Start(); err != nil {
		log.Printf("invoice-reminder: start failed: %v", err)
	}
	defer reminder.Stop()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
