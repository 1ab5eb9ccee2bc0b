package lookup

import (
	"fmt"
	"time"
)

// FeatureAvailability 零件的特征可用性描述
// 由零件号经反向查询与类别策略推导得到
type FeatureAvailability struct {
	PartNumber   string          `json:"part_number"`
	Region       string          `json:"region"`
	MGC5         string          `json:"mgc5"`
	PartCategory string          `json:"part_category"`
	Flags        map[string]bool `json:"flags"`
}

// ==================== 查询错误 ====================

// 错误码常量
const (
	ErrCodeCombinationNotFound = "combination_not_found"
	ErrCodePartNotFound        = "part_not_found"
	ErrCodeInternal            = "internal_error"
)

// LookupError 带错误码的查询错误
type LookupError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error 实现 error 接口
func (e *LookupError) Error() string {
	return e.Message
}

// NewCombinationNotFoundError 组合未命中错误
func NewCombinationNotFoundError(mgc5, region string) *LookupError {
	return &LookupError{
		Code:    ErrCodeCombinationNotFound,
		Message: fmt.Sprintf("combination not supported: mgc5=%s region=%s", mgc5, region),
	}
}

// NewPartNotFoundError 零件号未命中错误
func NewPartNotFoundError(partNumber string) *LookupError {
	return &LookupError{
		Code:    ErrCodePartNotFound,
		Message: fmt.Sprintf("part number not found: %s", partNumber),
	}
}

// NewInternalError 内部错误
func NewInternalError(err error) *LookupError {
	return &LookupError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf("lookup failed: %v", err),
	}
}

// ==================== 缓存类型 ====================

// CacheEntry 缓存条目
type CacheEntry struct {
	Data      *ResolvedPart
	ExpiresAt time.Time
	CreatedAt time.Time
	HitCount  int64
}

// CacheStats 缓存统计信息
type CacheStats struct {
	Size      int           `json:"size"`
	HitCount  int64         `json:"hit_count"`
	MissCount int64         `json:"miss_count"`
	HitRate   float64       `json:"hit_rate"`
	TTL       time.Duration `json:"ttl"`
}

// CacheConfig 缓存配置
type CacheConfig struct {
	TTL         time.Duration `yaml:"ttl"`
	MaxSize     int           `yaml:"max_size"`
	CleanupTime time.Duration `yaml:"cleanup_time"`
}

// DefaultCacheConfig 默认缓存配置
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		TTL:         5 * time.Minute,
		MaxSize:     1000,
		CleanupTime: 10 * time.Minute,
	}
}

// ResolvedPart 一条已解析的零件映射
type ResolvedPart struct {
	MGC5         string `json:"mgc5"`
	Region       string `json:"region"`
	PartNumber   string `json:"part_number"`
	PartCategory string `json:"part_category"`
}
