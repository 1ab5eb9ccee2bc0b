package upstream

import "encoding/json"

// Databricks Serving 接受的请求格式：
//   {"dataframe_split": {"columns": [...], "data": [...]}}
//   {"instances": [...]}
// 已是这两种形态的输入原样透传，否则包装为 instances 格式

// BuildPayload 将归一化输入包装为 Serving 请求体
func BuildPayload(input map[string]interface{}) map[string]interface{} {
	if _, ok := input["dataframe_split"]; ok {
		return input
	}
	if _, ok := input["instances"]; ok {
		return input
	}

	return map[string]interface{}{
		"instances": []interface{}{input},
	}
}

// ExtractPrediction 按约定从响应中提取标量预测值
// 约定：取 predictions 数组的第一个元素；缺失或非数值时返回 nil
func ExtractPrediction(raw json.RawMessage) *float64 {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}

	predictions, ok := body["predictions"].([]interface{})
	if !ok || len(predictions) == 0 {
		return nil
	}

	value, ok := predictions[0].(float64)
	if !ok {
		return nil
	}

	return &value
}
