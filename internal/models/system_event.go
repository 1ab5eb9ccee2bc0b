package models

import "time"

// SystemEvent 系统事件日志
// 用于记录系统重要事件，如预测失败、端点变更、健康检查等
type SystemEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"type:varchar(50);not null;index" json:"type"` // prediction_failed, endpoint_added, etc.
	Message   string    `gorm:"type:text;not null" json:"message"`
	Level     string    `gorm:"type:varchar(20);not null;default:'info'" json:"level"` // info, warning, error
	Metadata  string    `gorm:"type:json" json:"metadata,omitempty"`                   // 额外的元数据（JSON 格式）
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (SystemEvent) TableName() string {
	return "system_events"
}

// EventType 事件类型常量
const (
	EventTypePredictionFailed = "prediction_failed" // 预测失败
	EventTypeEndpointAdded    = "endpoint_added"    // 端点添加
	EventTypeEndpointUpdated  = "endpoint_updated"  // 端点更新
	EventTypeEndpointDeleted  = "endpoint_deleted"  // 端点删除
	EventTypeHealthCheck      = "health_check"      // 健康检查
	EventTypeLookupMiss       = "lookup_miss"       // 零件号查询未命中
)

// EventLevel 事件级别常量
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)
