package pipeline

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/model"
	"orderflow/internal/service"
)

// ErrPipelineTimeout marks a pipeline that exceeded its deadline.
var ErrPipelineTimeout = errors.New("pipeline timed out")

// Orchestrator runs one order through the five processing stages in
// dependency order: availability first, then price,
// then payment (which needs the price), then reservation (which needs an
// approved payment and the already-known product), and finally notification.
// Every failure shape, including the deadline, normalizes into a single
// unsuccessful OrderResult; the returned future never carries an error.
type Orchestrator struct {
	pool          *WorkerPool
	inventory     *service.InventoryService
	pricing       *service.PricingService
	payments      *service.PaymentService
	notifications *service.NotificationService
	timeout       time.Duration
	logger        *zap.Logger
}

func NewOrchestrator(
	pool *WorkerPool,
	inventory *service.InventoryService,
	pricing *service.PricingService,
	payments *service.PaymentService,
	notifications *service.NotificationService,
	timeout time.Duration,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		pool:          pool,
		inventory:     inventory,
		pricing:       pricing,
		payments:      payments,
		notifications: notifications,
		timeout:       timeout,
		logger:        logger,
	}
}

// ProcessOrder starts the pipeline for one order and returns a future that
// settles with the terminal OrderResult. The deadline runs from this call,
// independent of any sibling order.
func (o *Orchestrator) ProcessOrder(order model.Order) *Future[model.OrderResult] {
	start := time.Now()
	ctx := o.pool.Context()

	result := NewFuture[model.OrderResult]()

	productFuture := SubmitTask(o.pool, func() (model.Product, error) {
		return o.inventory.CheckAvailability(ctx, order)
	})

	priceFuture := Then(o.pool, productFuture, func(product model.Product) (float64, error) {
		return o.pricing.Calculate(ctx, order, product)
	})

	paymentFuture := Then(o.pool, priceFuture, func(price float64) (bool, error) {
		return o.payments.Process(ctx, order, price)
	})

	reserveFuture := Then(o.pool, paymentFuture, func(approved bool) (struct{}, error) {
		if !approved {
			return struct{}{}, service.ErrPaymentDeclined
		}
		// productFuture has settled: payment ran after price, price after check.
		product, err := productFuture.Wait()
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, o.inventory.Reserve(ctx, order, product)
	})

	// Reservation carries no value; join it back with the already-computed
	// price so notification sees the final amount.
	finalPriceFuture := Combine(o.pool, priceFuture, reserveFuture,
		func(price float64, _ struct{}) (float64, error) {
			return price, nil
		})

	completedFuture := Then(o.pool, finalPriceFuture, func(price float64) (model.OrderResult, error) {
		if err := o.notifications.Send(ctx, order, true, price); err != nil {
			return model.OrderResult{}, err
		}
		return model.OrderResult{
			OrderID:     order.ID,
			Success:     true,
			Message:     "order processed successfully",
			TotalAmount: price,
		}, nil
	})

	// The deadline races the chain for first settlement of the outer future;
	// whichever loses is discarded by Complete's first-wins rule.
	timer := time.AfterFunc(o.timeout, func() {
		res := o.failureResult(order, ErrPipelineTimeout)
		if result.Complete(res, nil) {
			o.logCompletion(order, res, start)
		}
	})

	completedFuture.onSettled(func(res model.OrderResult, err error) {
		timer.Stop()
		if err != nil {
			res = o.failureResult(order, err)
		}
		if result.Complete(res, nil) {
			o.logCompletion(order, res, start)
		}
	})

	return result
}

// Process runs the pipeline and blocks for its terminal outcome.
func (o *Orchestrator) Process(order model.Order) model.OrderResult {
	res, _ := o.ProcessOrder(order).Wait()
	return res
}

func (o *Orchestrator) failureResult(order model.Order, cause error) model.OrderResult {
	return model.OrderResult{
		OrderID:     order.ID,
		Success:     false,
		Message:     fmt.Sprintf("processing error: %v", cause),
		TotalAmount: 0,
	}
}

func (o *Orchestrator) logCompletion(order model.Order, res model.OrderResult, start time.Time) {
	duration := time.Since(start)
	if res.Success {
		o.logger.Info("order processed",
			zap.String("orderId", order.ID),
			zap.String("message", res.Message),
			zap.Duration("duration", duration))
		return
	}
	o.logger.Warn("order failed",
		zap.String("orderId", order.ID),
		zap.String("message", res.Message),
		zap.Duration("duration", duration))
}
