package pipeline

import (
	"go.uber.org/zap"

	"orderflow/internal/model"
)

// BatchRunner fans the orchestrator out over a collection of orders. Every
// pipeline runs independently: one order's failure or timeout never cancels
// or delays a sibling.
type BatchRunner struct {
	orchestrator *Orchestrator
	logger       *zap.Logger
}

func NewBatchRunner(orchestrator *Orchestrator, logger *zap.Logger) *BatchRunner {
	return &BatchRunner{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// RunAll starts one pipeline per order concurrently and blocks until every
// pipeline has settled. Results are returned in input order regardless of
// completion order: results[i] belongs to orders[i].
func (b *BatchRunner) RunAll(orders []model.Order) []model.OrderResult {
	b.logger.Info("processing order batch", zap.Int("orders", len(orders)))

	futures := make([]*Future[model.OrderResult], len(orders))
	for i, order := range orders {
		futures[i] = b.orchestrator.ProcessOrder(order)
	}

	results := make([]model.OrderResult, len(orders))
	for i, f := range futures {
		results[i], _ = f.Wait()
	}

	b.logger.Info("order batch complete", zap.Int("orders", len(orders)))
	return results
}
