package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/ViktorDebugger/DeliFood-server/config"
	"github.com/ViktorDebugger/DeliFood-server/internal/auth"
	"github.com/ViktorDebugger/DeliFood-server/internal/service"
	"github.com/ViktorDebugger/DeliFood-server/internal/storage"

	httpapi "github.com/ViktorDebugger/DeliFood-server/internal/api/http"
)

func main() {
	ctx := context.Background()

	db := config.MustInitPostgres()
	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	// Redis and Kafka are optional; the service degrades to uncached reads
	// and no event stream when they are not configured.
	var dishCache service.DishCache
	if os.Getenv("REDIS_HOST") != "" {
		dishCache = storage.NewRedisDishCache(config.MustInitRedis(), 5*time.Minute)
	}

	var publisher service.OrderEventPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		publisher = storage.NewKafkaPublisher(config.NewKafkaWriter("order-events"))
	}

	exchanger := auth.NewTokenExchanger(os.Getenv("FIREBASE_WEB_API_KEY"))
	gateway := auth.NewFirebaseGateway(config.MustInitFirebaseAuth(ctx), exchanger)

	qrEncoder := service.DefaultQRGenerator{BaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:3000")}

	dishes := service.NewDishService(repo, dishCache)
	orders := service.NewOrderService(repo, qrEncoder, publisher)
	authSvc := service.NewAuthService(gateway)

	handler := httpapi.NewHandler(dishes, orders, authSvc, httpapi.NewAuthMiddleware(gateway))
	router := httpapi.NewRouter(handler)

	httpapi.StartServer(":"+getEnv("PORT", "3000"), router)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
