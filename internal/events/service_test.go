package events

import (
	"encoding/json"
	"testing"

	"github.com/Mieluoxxx/Vegax-Predict/internal/db"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(database)
	require.NoError(t, err)

	return database
}

func TestEventService_LogEvent(t *testing.T) {
	database := setupTestDB(t)
	service := NewService(database)

	// 测试记录事件
	err := service.LogInfo(models.EventTypeHealthCheck, "健康检查成功", map[string]interface{}{
		"key":    "shipping_cost_median",
		"status": "healthy",
	})
	require.NoError(t, err)

	// 验证事件已保存
	var count int64
	database.Model(&models.SystemEvent{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestEventService_MetadataSerialized(t *testing.T) {
	database := setupTestDB(t)
	service := NewService(database)

	err := service.LogError(models.EventTypePredictionFailed, "timeout: deadline exceeded", map[string]interface{}{
		"model": "shipping_cost_median",
	})
	require.NoError(t, err)

	var event models.SystemEvent
	require.NoError(t, database.First(&event).Error)
	assert.Equal(t, models.EventLevelError, event.Level)

	var metadata map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(event.Metadata), &metadata))
	assert.Equal(t, "shipping_cost_median", metadata["model"])
}

func TestEventService_GetRecentEvents(t *testing.T) {
	database := setupTestDB(t)
	service := NewService(database)

	// 插入多个事件
	for i := 0; i < 15; i++ {
		service.LogInfo(models.EventTypeHealthCheck, "测试事件", nil)
	}

	// 获取最近 10 条
	events, err := service.GetRecentEvents(10)
	require.NoError(t, err)
	assert.Equal(t, 10, len(events))
}

func TestEventService_GetEventsByType(t *testing.T) {
	database := setupTestDB(t)
	service := NewService(database)

	// 插入不同类型的事件
	service.LogInfo(models.EventTypeHealthCheck, "健康检查1", nil)
	service.LogInfo(models.EventTypeHealthCheck, "健康检查2", nil)
	service.LogWarning(models.EventTypeLookupMiss, "组合未命中", nil)

	// 按类型查询
	events, err := service.GetEventsByType(models.EventTypeHealthCheck, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, len(events))

	for _, evt := range events {
		assert.Equal(t, models.EventTypeHealthCheck, evt.Type)
	}
}
