package main

import (
	"log"

	"github.com/joho/godotenv"    // optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/rmaciel/event-hotel-booking/internal/config"
	"github.com/rmaciel/event-hotel-booking/internal/database"
	"github.com/rmaciel/event-hotel-booking/internal/handler"
	"github.com/rmaciel/event-hotel-booking/internal/queue"
	"github.com/rmaciel/event-hotel-booking/internal/repository"
	"github.com/rmaciel/event-hotel-booking/internal/router"
	"github.com/rmaciel/event-hotel-booking/internal/service"
)

func main() {
	// Load .env when present; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; hotel list caching disabled")
	}

	bookingRepo := repository.NewBookingRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	hotelRepo := repository.NewHotelRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	ticketRepo := repository.NewTicketRepo(db)

	bookingSvc := service.NewBookingService(bookingRepo, roomRepo, enrollmentRepo, ticketRepo, queue.PublishBookingEvent)
	hotelSvc := service.NewHotelService(hotelRepo, roomRepo, enrollmentRepo, ticketRepo, rdb, cfg.HotelCacheTTL)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterBooking(e, handler.NewBookingHandler(bookingSvc), cfg.JWTSecret)
	router.RegisterHotels(e, handler.NewHotelHandler(hotelSvc), cfg.JWTSecret)

	// Consume booking events in the background; the consumer reconnects
	// on broker failure and never brings the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
