package stats

import (
	"sync"
	"sync/atomic"
	"time"
)

// RequestCounter 请求计数器
// 使用内存计数器 + 时间窗口滑动统计实现
type RequestCounter struct {
	totalRequests int64 // 总请求数（原子操作）

	// 时间窗口统计（用于 QPS 计算）
	windowMutex    sync.RWMutex
	currentWindow  *timeWindow
	previousWindow *timeWindow
	windowDuration time.Duration

	// 按模型的预测计数
	modelMutex  sync.RWMutex
	modelCounts map[string]*ModelCount
}

// ModelCount 单个模型的预测计数
type ModelCount struct {
	Succeeded int64 `json:"succeeded"`
	Failed    int64 `json:"failed"`
}

// timeWindow 时间窗口
type timeWindow struct {
	count     int64
	startTime time.Time
}

// RequestStats 请求统计信息
type RequestStats struct {
	Total      int64   `json:"total"`
	CurrentQPS float64 `json:"current_qps"`
}

// NewRequestCounter 创建请求计数器
func NewRequestCounter(windowDuration time.Duration) *RequestCounter {
	if windowDuration == 0 {
		windowDuration = 60 * time.Second // 默认 60 秒窗口
	}

	counter := &RequestCounter{
		windowDuration: windowDuration,
		currentWindow: &timeWindow{
			startTime: time.Now(),
		},
		previousWindow: &timeWindow{
			startTime: time.Now().Add(-windowDuration),
		},
		modelCounts: make(map[string]*ModelCount),
	}

	// 启动后台协程，定期滚动时间窗口
	go counter.rotateWindows()

	return counter
}

// Increment 增加请求计数
func (rc *RequestCounter) Increment() {
	atomic.AddInt64(&rc.totalRequests, 1)

	rc.windowMutex.Lock()
	rc.currentWindow.count++
	rc.windowMutex.Unlock()
}

// RecordPrediction 记录一次模型预测结果
func (rc *RequestCounter) RecordPrediction(modelKey string, succeeded bool) {
	rc.modelMutex.Lock()
	defer rc.modelMutex.Unlock()

	count, ok := rc.modelCounts[modelKey]
	if !ok {
		count = &ModelCount{}
		rc.modelCounts[modelKey] = count
	}

	if succeeded {
		count.Succeeded++
	} else {
		count.Failed++
	}
}

// ModelStats 各模型的预测计数快照
func (rc *RequestCounter) ModelStats() map[string]ModelCount {
	rc.modelMutex.RLock()
	defer rc.modelMutex.RUnlock()

	snapshot := make(map[string]ModelCount, len(rc.modelCounts))
	for key, count := range rc.modelCounts {
		snapshot[key] = *count
	}
	return snapshot
}

// GetTotal 获取总请求数
func (rc *RequestCounter) GetTotal() int64 {
	return atomic.LoadInt64(&rc.totalRequests)
}

// GetQPS 获取当前 QPS（每秒请求数）
// 基于滑动时间窗口计算
func (rc *RequestCounter) GetQPS() float64 {
	rc.windowMutex.RLock()
	defer rc.windowMutex.RUnlock()

	now := time.Now()

	currentElapsed := now.Sub(rc.currentWindow.startTime).Seconds()
	if currentElapsed == 0 {
		currentElapsed = 1 // 避免除零
	}

	currentQPS := float64(rc.currentWindow.count) / currentElapsed

	// 如果当前窗口时间很短，结合上一个窗口的数据
	if currentElapsed < rc.windowDuration.Seconds() {
		prevWeight := (rc.windowDuration.Seconds() - currentElapsed) / rc.windowDuration.Seconds()
		prevQPS := float64(rc.previousWindow.count) / rc.windowDuration.Seconds()

		// 加权平均
		return currentQPS*(1-prevWeight) + prevQPS*prevWeight
	}

	return currentQPS
}

// GetStats 获取统计信息
func (rc *RequestCounter) GetStats() RequestStats {
	return RequestStats{
		Total:      rc.GetTotal(),
		CurrentQPS: rc.GetQPS(),
	}
}

// rotateWindows 定期滚动时间窗口
func (rc *RequestCounter) rotateWindows() {
	ticker := time.NewTicker(rc.windowDuration)
	defer ticker.Stop()

	for range ticker.C {
		rc.windowMutex.Lock()

		rc.previousWindow = rc.currentWindow
		rc.currentWindow = &timeWindow{
			startTime: time.Now(),
			count:     0,
		}

		rc.windowMutex.Unlock()
	}
}
