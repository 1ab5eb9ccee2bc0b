package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// Client Databricks Serving 调用客户端
// 单次尝试，不重试；所有失败形态通过 PredictionResult 返回
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient 创建调用客户端
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 30 * time.Second // 默认 30 秒超时
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Invoke 对目标端点执行一次预测调用
func (c *Client) Invoke(ctx context.Context, target InvokeTarget, input map[string]interface{}) *PredictionResult {
	payload := BuildPayload(input)

	body, err := json.Marshal(payload)
	if err != nil {
		return Failed(target.ModelKey, fmt.Sprintf("invalid-json-request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(body))
	if err != nil {
		return Failed(target.ModelKey, fmt.Sprintf("%s: %v", FailureConnection, err))
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+target.Token)

	log.Printf("➡️  [调用] 模型: %s, 目标URL: %s, 请求体大小: %d bytes", target.ModelKey, target.URL, len(body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		kind := classifyTransportError(err)
		log.Printf("❌ [调用失败] 模型: %s, 种类: %s, 错误: %v", target.ModelKey, kind, err)
		return Failed(target.ModelKey, fmt.Sprintf("%s: %v", kind, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(target.ModelKey, fmt.Sprintf("%s: %v", FailureConnection, err))
	}

	log.Printf("⬅️  [响应] 模型: %s, 状态码: %d, 响应体大小: %d bytes", target.ModelKey, resp.StatusCode, len(respBody))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		preview := string(respBody)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return Failed(target.ModelKey, fmt.Sprintf("%s: %s", FailureHTTP(resp.StatusCode), preview))
	}

	if !json.Valid(respBody) {
		return Failed(target.ModelKey, FailureInvalidJSON)
	}

	raw := json.RawMessage(respBody)
	result := &PredictionResult{
		ModelKey:       target.ModelKey,
		RawResponse:    raw,
		ExtractedValue: ExtractPrediction(raw),
		Succeeded:      true,
	}

	log.Printf("✅ [完成] 模型: %s, 预测值: %s", target.ModelKey, formatValue(result.ExtractedValue))
	return result
}

// Timeout 客户端单次调用超时
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// formatValue 日志用预测值展示
func formatValue(v *float64) string {
	if v == nil {
		return "<none>"
	}
	return fmt.Sprintf("%g", *v)
}
