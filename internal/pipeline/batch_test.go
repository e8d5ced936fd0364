package pipeline

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orderflow/internal/model"
)

func newTestRunner(env *testEnv) *BatchRunner {
	return NewBatchRunner(env.orchestrator, zap.NewNop())
}

func TestBatchRunner_PreservesInputOrder(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	runner := newTestRunner(env)

	// Earlier orders run the full five-stage pipeline; later orders fail at
	// the availability check and therefore complete much sooner. The result
	// slice must still line up with the input slice.
	orders := []model.Order{
		{ID: "ORD001", ProductID: "PROD002", Quantity: 1, CustomerEmail: "a@example.com"},
		{ID: "ORD002", ProductID: "PROD002", Quantity: 2, CustomerEmail: "b@example.com"},
		{ID: "ORD003", ProductID: "PROD002", Quantity: 3, CustomerEmail: "c@example.com"},
		{ID: "ORD004", ProductID: "NOPE", Quantity: 1, CustomerEmail: "d@example.com"},
		{ID: "ORD005", ProductID: "NOPE", Quantity: 1, CustomerEmail: "e@example.com"},
		{ID: "ORD006", ProductID: "NOPE", Quantity: 1, CustomerEmail: "f@example.com"},
	}
	env.inventory.SetLatencies(time.Millisecond, 50*time.Millisecond)

	results := runner.RunAll(orders)

	require.Len(t, results, len(orders))
	for i, order := range orders {
		assert.Equal(t, order.ID, results[i].OrderID, "results[%d] must belong to orders[%d]", i, i)
	}
}

func TestBatchRunner_FailureIsolation(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	runner := newTestRunner(env)

	orders := []model.Order{
		{ID: "ORD001", ProductID: "PROD001", Quantity: 1, CustomerEmail: "a@example.com"},
		{ID: "ORD002", ProductID: "PROD999", Quantity: 1, CustomerEmail: "b@example.com"},
		{ID: "ORD003", ProductID: "PROD001", Quantity: 1, CustomerEmail: "c@example.com"},
	}

	results := runner.RunAll(orders)

	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success, "a sibling's failure must not affect this order")
}

func TestBatchRunner_TimeoutDoesNotHangBatch(t *testing.T) {
	env := newTestEnv(t, 100*time.Millisecond)
	runner := newTestRunner(env)

	// ORD002's payment stage outlives the deadline; the batch must still
	// settle every order.
	env.payments.SetLatency(300 * time.Millisecond)
	orders := []model.Order{
		{ID: "ORD001", ProductID: "PROD999", Quantity: 1, CustomerEmail: "a@example.com"},
		{ID: "ORD002", ProductID: "PROD001", Quantity: 1, CustomerEmail: "b@example.com"},
	}

	done := make(chan []model.OrderResult, 1)
	go func() { done <- runner.RunAll(orders) }()

	select {
	case results := <-done:
		require.Len(t, results, 2)
		assert.False(t, results[0].Success)
		assert.False(t, results[1].Success)
		assert.Contains(t, results[1].Message, "pipeline timed out")
	case <-time.After(2 * time.Second):
		t.Fatal("batch did not complete after a pipeline timeout")
	}
}

func TestBatchRunner_EndToEndScenario(t *testing.T) {
	env := newTestEnv(t, 5*time.Second)
	runner := newTestRunner(env)

	good := make([]model.Order, 5)
	for i := range good {
		good[i] = model.Order{
			ID:            fmt.Sprintf("ORD00%d", i+1),
			ProductID:     "PROD002",
			Quantity:      i + 1,
			CustomerEmail: fmt.Sprintf("customer%d@example.com", i+1),
		}
	}
	orders := append(good,
		model.Order{ID: "ORD006", ProductID: "PROD999", Quantity: 1, CustomerEmail: "customer6@example.com"},
		model.Order{ID: "ORD007", ProductID: "PROD002", Quantity: 10000, CustomerEmail: "customer7@example.com"},
	)

	results := runner.RunAll(orders)
	require.Len(t, results, 7)

	var successes, failures int
	var revenue float64
	for _, r := range results {
		if r.Success {
			successes++
			revenue += r.TotalAmount
		} else {
			failures++
		}
	}

	assert.Equal(t, 5, successes)
	assert.Equal(t, 2, failures)

	// quantities 1..5 of unit price 50, no discount at qty <= 5, 12% tax
	var expected float64
	for q := 1; q <= 5; q++ {
		expected += 50.0 * float64(q) * 1.12
	}
	assert.InDelta(t, expected, revenue, 1e-6)

	assert.Contains(t, results[5].Message, "product not found")
	assert.Contains(t, results[6].Message, "insufficient stock")

	// 1+2+3+4+5 units reserved out of 100
	assert.Equal(t, 85, env.inventory.Stock("PROD002"))
}
