package endpoint

import (
	"time"

	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
)

// CreateEndpointRequest 创建端点请求
type CreateEndpointRequest struct {
	Key           string `json:"key" binding:"required"`
	DisplayName   string `json:"display_name" binding:"required"`
	ServedModel   string `json:"served_model" binding:"required"`
	InvocationURL string `json:"invocation_url" binding:"required,url"`
	Token         string `json:"token" binding:"required"`
	Enabled       *bool  `json:"enabled"`
}

// UpdateEndpointRequest 更新端点请求
type UpdateEndpointRequest struct {
	DisplayName   *string `json:"display_name"`
	ServedModel   *string `json:"served_model"`
	InvocationURL *string `json:"invocation_url" binding:"omitempty,url"`
	Token         *string `json:"token"`
	Enabled       *bool   `json:"enabled"`
}

// EndpointResponse 端点响应（Token 脱敏）
type EndpointResponse struct {
	ID            uint      `json:"id"`
	Key           string    `json:"key"`
	DisplayName   string    `json:"display_name"`
	ServedModel   string    `json:"served_model"`
	InvocationURL string    `json:"invocation_url"`
	Token         string    `json:"token"` // 脱敏显示
	Enabled       bool      `json:"enabled"`
	HealthStatus  string    `json:"health_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// MaskToken Serving Token 脱敏
// 格式: dap****last4
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:3] + "****" + token[len(token)-4:]
}

// ToEndpointResponse 转换为响应（Token 脱敏）
func ToEndpointResponse(endpoint *models.ModelEndpoint, plainToken string) *EndpointResponse {
	return &EndpointResponse{
		ID:            endpoint.ID,
		Key:           endpoint.Key,
		DisplayName:   endpoint.DisplayName,
		ServedModel:   endpoint.ServedModel,
		InvocationURL: endpoint.InvocationURL,
		Token:         MaskToken(plainToken),
		Enabled:       endpoint.Enabled,
		HealthStatus:  endpoint.HealthStatus,
		CreatedAt:     endpoint.CreatedAt,
		UpdatedAt:     endpoint.UpdatedAt,
	}
}
