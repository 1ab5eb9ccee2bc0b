package schema

// 运费预测模型目录
// 三个 Serving Endpoint 共享同一套输入契约，仅 sample_input 不同

// regionOptions 区域码下拉选项
func regionOptions() []Option {
	return []Option{
		{Value: 1, Label: "R1"},
		{Value: 2, Label: "R2"},
		{Value: 3, Label: "R3"},
		{Value: 4, Label: "R4"},
	}
}

// productOptions MGC5 产品码下拉选项
func productOptions() []Option {
	return []Option{
		{Value: 1408, Label: "D1408"},
		{Value: 1601, Label: "D1601"},
		{Value: 303, Label: "D0303"},
	}
}

// shippingFields 运费模型的输入字段（固定顺序）
func shippingFields() []FieldSpec {
	return []FieldSpec{
		{
			Name:        "lead_time_days",
			Kind:        KindFloat,
			Min:         floatPtr(1),
			Max:         floatPtr(365),
			Description: "Expected delivery time in days",
		},
		{
			Name:        "supplier_reliability_score",
			Kind:        KindFloat,
			Min:         floatPtr(0),
			Max:         floatPtr(100),
			Description: "Supplier reliability rating (0-100)",
		},
		{
			Name:        "weather_condition_severity",
			Kind:        KindFloat,
			Min:         floatPtr(0),
			Max:         floatPtr(10),
			Description: "Weather impact severity score (0-10)",
		},
		{
			Name:        "route_risk_level",
			Kind:        KindFloat,
			Min:         floatPtr(0),
			Max:         floatPtr(10),
			Description: "Route security and safety risk (0-10)",
		},
		{
			Name:        "disruption_likelihood_score",
			Kind:        KindFloat,
			Min:         floatPtr(0),
			Max:         floatPtr(100),
			Description: "Probability of shipping disruptions (0-100)",
		},
		{
			Name:        "risk_classification",
			Kind:        KindInteger,
			Min:         floatPtr(1),
			Max:         floatPtr(4),
			Description: "Risk category classification (1-4)",
		},
		{
			Name:        "supplier_country",
			Kind:        KindInteger,
			Description: "Region code",
			Options:     regionOptions(),
		},
		{
			Name:        "product_id",
			Kind:        KindInteger,
			Description: "MGC5 product code",
			Options:     productOptions(),
		},
	}
}

// ShippingCatalog 内置的运费预测模型目录
func ShippingCatalog() []*ModelSpec {
	return []*ModelSpec{
		{
			Key:         "shipping_cost_90th_percentile",
			DisplayName: "Shipping Cost 90th Percentile Model",
			Description: "Predicts 90th percentile shipping costs for worst-case scenario planning",
			ServedModel: "shipping-cost-90th-percentile-1",
			Fields:      shippingFields(),
			SampleInput: map[string]float64{
				"lead_time_days":              14.5,
				"supplier_reliability_score":  85.2,
				"weather_condition_severity":  3.1,
				"route_risk_level":            2.8,
				"disruption_likelihood_score": 15.6,
				"risk_classification":         3,
				"supplier_country":            2,
				"product_id":                  1408,
			},
		},
		{
			Key:         "shipping_cost_10th_percentile",
			DisplayName: "Shipping Cost 10th Percentile",
			Description: "XGBoost-based shipping cost prediction model for general use cases",
			ServedModel: "shipping-cost-10th-percentile-1",
			Fields:      shippingFields(),
			SampleInput: map[string]float64{
				"lead_time_days":              10.0,
				"supplier_reliability_score":  90.0,
				"weather_condition_severity":  2.5,
				"route_risk_level":            2.0,
				"disruption_likelihood_score": 12.0,
				"risk_classification":         2,
				"supplier_country":            1,
				"product_id":                  1601,
			},
		},
		{
			Key:         "shipping_cost_median",
			DisplayName: "Shipping Cost Median Model",
			Description: "Median-based shipping cost prediction for balanced estimates",
			ServedModel: "shipping-cost-xgboost-1",
			Fields:      shippingFields(),
			SampleInput: map[string]float64{
				"lead_time_days":              7.0,
				"supplier_reliability_score":  88.0,
				"weather_condition_severity":  2.0,
				"route_risk_level":            1.5,
				"disruption_likelihood_score": 10.0,
				"risk_classification":         2,
				"supplier_country":            3,
				"product_id":                  303,
			},
		},
	}
}
