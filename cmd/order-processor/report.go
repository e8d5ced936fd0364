package main

import (
	"fmt"
	"time"

	"orderflow/internal/model"
)

// printReport segments the batch outcome into successes and failures and
// prints aggregate counts and revenue. Revenue counts successful orders only.
func printReport(results []model.OrderResult, elapsed time.Duration) {
	var successful, failed []model.OrderResult
	for _, r := range results {
		if r.Success {
			successful = append(successful, r)
		} else {
			failed = append(failed, r)
		}
	}

	totalRevenue := 0.0
	for _, r := range successful {
		totalRevenue += r.TotalAmount
	}

	fmt.Println("=== ORDER PROCESSING RESULTS ===")

	fmt.Println("\nSuccessful orders:")
	for _, r := range successful {
		fmt.Printf("  + %s - %.2f - %s\n", r.OrderID, r.TotalAmount, r.Message)
	}

	fmt.Println("\nFailed orders:")
	for _, r := range failed {
		fmt.Printf("  - %s - %s\n", r.OrderID, r.Message)
	}

	total := len(results)
	successRate := 0.0
	if total > 0 {
		successRate = float64(len(successful)) / float64(total) * 100
	}

	fmt.Println("\nSummary:")
	fmt.Printf("  total orders:  %d\n", total)
	fmt.Printf("  successful:    %d (%.1f%%)\n", len(successful), successRate)
	fmt.Printf("  failed:        %d (%.1f%%)\n", len(failed), 100-successRate)
	fmt.Printf("  total revenue: %.2f\n", totalRevenue)
	fmt.Printf("  elapsed:       %s\n", elapsed.Round(time.Millisecond))
}
