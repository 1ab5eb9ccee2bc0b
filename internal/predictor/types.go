package predictor

import "github.com/Mieluoxxx/Vegax-Predict/internal/upstream"

// AggregateResult 多端点预测的聚合结果
// Min/Max/Mean 只统计成功且带数值的结果；零成功时三者均为 nil
type AggregateResult struct {
	PerModel     map[string]*upstream.PredictionResult `json:"per_model"`
	SuccessCount int                                   `json:"success_count"`
	FailureCount int                                   `json:"failure_count"`
	Min          *float64                              `json:"min,omitempty"`
	Max          *float64                              `json:"max,omitempty"`
	Mean         *float64                              `json:"mean,omitempty"`
}

// summarize 计算成功结果的统计量
// 合并完成后调用；results 不再被并发访问
func summarize(agg *AggregateResult) {
	var values []float64
	for _, result := range agg.PerModel {
		if result.Succeeded {
			agg.SuccessCount++
			if result.ExtractedValue != nil {
				values = append(values, *result.ExtractedValue)
			}
		} else {
			agg.FailureCount++
		}
	}

	if len(values) == 0 {
		return
	}

	min, max, sum := values[0], values[0], 0.0
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}
	mean := sum / float64(len(values))

	agg.Min = &min
	agg.Max = &max
	agg.Mean = &mean
}
