package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HealthChecker 端点健康检查器
// 向 Serving 调用地址 POST 一条样例输入来验证可达性
type HealthChecker struct {
	client  *http.Client
	timeout time.Duration
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(timeout time.Duration) *HealthChecker {
	if timeout == 0 {
		timeout = 5 * time.Second // 默认 5 秒超时
	}

	return &HealthChecker{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// HealthCheckResult 健康检查结果
type HealthCheckResult struct {
	Healthy        bool      `json:"healthy"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	StatusCode     int       `json:"status_code,omitempty"`
	Error          string    `json:"error,omitempty"`
	CheckedAt      time.Time `json:"checked_at"`
}

// CheckHealth 执行健康检查
// sampleInput 为该模型的样例输入，包装成 instances 格式发送
func (hc *HealthChecker) CheckHealth(ctx context.Context, invocationURL, token string, sampleInput map[string]float64) (*HealthCheckResult, error) {
	startTime := time.Now()
	result := &HealthCheckResult{
		CheckedAt: startTime,
	}

	payload := map[string]interface{}{
		"instances": []interface{}{sampleInput},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		result.Error = fmt.Sprintf("序列化样例输入失败: %v", err)
		return result, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, invocationURL, bytes.NewReader(body))
	if err != nil {
		result.Error = fmt.Sprintf("创建请求失败: %v", err)
		return result, nil
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", "Vegax-Predict/1.0")

	resp, err := hc.client.Do(req)
	if err != nil {
		result.Error = fmt.Sprintf("请求失败: %v", err)
		result.ResponseTimeMs = time.Since(startTime).Milliseconds()
		return result, nil
	}
	defer resp.Body.Close()

	result.ResponseTimeMs = time.Since(startTime).Milliseconds()
	result.StatusCode = resp.StatusCode

	// 2xx 状态码视为健康
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Healthy = true
	} else {
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	return result, nil
}

// CheckHealthSimple 简化的健康检查（不需要 context）
func (hc *HealthChecker) CheckHealthSimple(invocationURL, token string, sampleInput map[string]float64) (*HealthCheckResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), hc.timeout)
	defer cancel()

	return hc.CheckHealth(ctx, invocationURL, token, sampleInput)
}
