package main

import (
	"time"

	"go.uber.org/zap"

	"orderflow/internal/model"
	"orderflow/internal/pipeline"
	"orderflow/internal/service"
)

func seedCatalog(inventory *service.InventoryService) {
	products := []model.Product{
		{ID: "PROD001", Name: "Laptop", Price: 150000.0, Stock: 10},
		{ID: "PROD002", Name: "Mouse", Price: 3500.0, Stock: 50},
		{ID: "PROD003", Name: "Keyboard", Price: 8500.0, Stock: 30},
		{ID: "PROD004", Name: "Monitor", Price: 85000.0, Stock: 15},
		{ID: "PROD005", Name: "Headphones", Price: 12000.0, Stock: 25},
	}
	for _, p := range products {
		inventory.SetProduct(p)
	}
}

func demoOrders() []model.Order {
	return []model.Order{
		{ID: "ORD001", ProductID: "PROD001", Quantity: 2, CustomerEmail: "customer1@example.com"},
		{ID: "ORD002", ProductID: "PROD002", Quantity: 10, CustomerEmail: "customer2@example.com"}, // bulk discount
		{ID: "ORD003", ProductID: "PROD003", Quantity: 5, CustomerEmail: "customer3@example.com"},
		{ID: "ORD004", ProductID: "PROD004", Quantity: 1, CustomerEmail: "customer4@example.com"},
		{ID: "ORD005", ProductID: "PROD005", Quantity: 3, CustomerEmail: "customer5@example.com"},
		{ID: "ORD006", ProductID: "PROD999", Quantity: 1, CustomerEmail: "customer6@example.com"},   // unknown product
		{ID: "ORD007", ProductID: "PROD001", Quantity: 100, CustomerEmail: "customer7@example.com"}, // beyond stock
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := pipeline.DefaultConfig()

	inventory := service.NewInventoryService(logger)
	pricing := service.NewPricingService(logger)
	payments := service.NewPaymentService(logger)
	notifications := service.NewNotificationService(logger)

	seedCatalog(inventory)

	pool := pipeline.NewWorkerPool(cfg.PoolSize)
	orchestrator := pipeline.NewOrchestrator(
		pool, inventory, pricing, payments, notifications,
		cfg.PipelineTimeout, logger,
	)
	runner := pipeline.NewBatchRunner(orchestrator, logger)

	start := time.Now()
	results := runner.RunAll(demoOrders())
	elapsed := time.Since(start)

	if err := pool.Shutdown(60 * time.Second); err != nil {
		logger.Warn("pool shutdown", zap.Error(err))
	}

	printReport(results, elapsed)
}
