package upstream

import "encoding/json"

// InvokeTarget 一次调用的目标端点
type InvokeTarget struct {
	ModelKey string // 网关侧模型标识
	URL      string // Serving 调用地址
	Token    string // Bearer Token（明文）
}

// PredictionResult 单次预测调用的结果
// 所有失败形态都以数据表示，不向上层抛错
type PredictionResult struct {
	ModelKey       string          `json:"model_key"`
	RawResponse    json.RawMessage `json:"raw_response,omitempty"` // 上游响应原文
	ExtractedValue *float64        `json:"extracted_value,omitempty"`
	Succeeded      bool            `json:"succeeded"`
	ErrorMessage   string          `json:"error_message,omitempty"`
}

// Failed 构造失败结果
func Failed(modelKey, message string) *PredictionResult {
	return &PredictionResult{
		ModelKey:     modelKey,
		Succeeded:    false,
		ErrorMessage: message,
	}
}
