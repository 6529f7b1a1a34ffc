package record

import "github.com/shopspring/decimal"

type TypeStats struct {
	Count   int `json:"count"`
	Success int `json:"success"`
}

type Stats struct {
	TotalTests        int                  `json:"total_tests"`
	SuccessCount      int                  `json:"success_count"`
	FailureCount      int                  `json:"failure_count"`
	SuccessRate       float64              `json:"success_rate"`
	AvgResponseTimeMs float64              `json:"avg_response_time_ms"`
	TestsByType       map[string]TypeStats `json:"tests_by_type"`
}

// ComputeStats aggregates a history snapshot. Zero latencies (skipped or failed
// before sending) are left out of the average.
func ComputeStats(records []TestRecord) Stats {
	stats := Stats{TestsByType: make(map[string]TypeStats)}
	if len(records) == 0 {
		return stats
	}

	var latencySum float64
	var latencyCount int
	for _, r := range records {
		stats.TotalTests++
		byType := stats.TestsByType[r.Type]
		byType.Count++
		if r.Success {
			stats.SuccessCount++
			byType.Success++
		}
		stats.TestsByType[r.Type] = byType
		if r.ResponseTimeMs > 0 {
			latencySum += r.ResponseTimeMs
			latencyCount++
		}
	}
	stats.FailureCount = stats.TotalTests - stats.SuccessCount
	stats.SuccessRate = round2(float64(stats.SuccessCount) / float64(stats.TotalTests) * 100)
	if latencyCount > 0 {
		stats.AvgResponseTimeMs = round2(latencySum / float64(latencyCount))
	}
	return stats
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
