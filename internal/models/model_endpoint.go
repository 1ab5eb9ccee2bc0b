package models

import (
	"time"

	"gorm.io/gorm"
)

// ModelEndpoint 模型服务端点
// 用于存储 Databricks Serving Endpoint 的配置信息
type ModelEndpoint struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Key           string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"` // 模型唯一标识，如 shipping_cost_median
	DisplayName   string         `gorm:"type:varchar(200);not null" json:"display_name"`
	ServedModel   string         `gorm:"type:varchar(100);not null" json:"served_model"` // Databricks 上注册的模型名
	InvocationURL string         `gorm:"type:varchar(255);not null" json:"invocation_url"`
	Token         string         `gorm:"type:text;not null" json:"token"` // 加密存储
	Enabled       bool           `gorm:"not null" json:"enabled"`
	HealthStatus  string         `gorm:"type:varchar(20);default:'unknown'" json:"health_status"` // healthy/unhealthy/unknown
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"` // 软删除支持
}

// TableName 指定表名
func (ModelEndpoint) TableName() string {
	return "model_endpoints"
}
