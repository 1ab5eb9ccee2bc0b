package predictor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/Mieluoxxx/Vegax-Predict/internal/endpoint"
	"github.com/Mieluoxxx/Vegax-Predict/internal/events"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
	"github.com/Mieluoxxx/Vegax-Predict/internal/schema"
	"github.com/Mieluoxxx/Vegax-Predict/internal/stats"
	"github.com/Mieluoxxx/Vegax-Predict/internal/upstream"
)

// Service 预测聚合服务
// 单模型预测：校验 -> 调用；全量预测：并发扇出后合并
type Service struct {
	registry  *schema.Registry
	endpoints *endpoint.Service
	client    *upstream.Client
	events    *events.Service       // 可为 nil
	counter   *stats.RequestCounter // 可为 nil
}

// NewService 创建预测服务实例
func NewService(registry *schema.Registry, endpoints *endpoint.Service, client *upstream.Client) *Service {
	return &Service{
		registry:  registry,
		endpoints: endpoints,
		client:    client,
	}
}

// WithEvents 挂接事件日志服务
func (s *Service) WithEvents(eventService *events.Service) *Service {
	s.events = eventService
	return s
}

// WithStats 挂接预测计数器
func (s *Service) WithStats(counter *stats.RequestCounter) *Service {
	s.counter = counter
	return s
}

// PredictOne 对指定模型执行一次预测
// 校验失败、端点缺失、上游失败都以失败结果返回，不返回 error
func (s *Service) PredictOne(ctx context.Context, modelKey string, input map[string]interface{}) *upstream.PredictionResult {
	spec, ok := s.registry.GetModel(modelKey)
	if !ok {
		return s.failed(modelKey, fmt.Sprintf("unknown model: %s", modelKey))
	}

	ep, err := s.endpoints.GetEndpointByKey(modelKey)
	if err != nil {
		if errors.Is(err, endpoint.ErrEndpointNotFound) {
			return s.failed(modelKey, fmt.Sprintf("no serving endpoint configured for model: %s", modelKey))
		}
		return s.failed(modelKey, fmt.Sprintf("failed to load endpoint: %v", err))
	}
	if !ep.Enabled {
		return s.failed(modelKey, fmt.Sprintf("endpoint disabled: %s", modelKey))
	}

	return s.invoke(ctx, spec, ep, input)
}

// PredictAll 对所有启用的模型并发执行预测
// 等待全部调用结束后按模型 key 合并，单个失败不影响其他调用
func (s *Service) PredictAll(ctx context.Context, input map[string]interface{}) *AggregateResult {
	agg := &AggregateResult{
		PerModel: make(map[string]*upstream.PredictionResult),
	}

	endpoints, err := s.endpoints.ListEnabledEndpoints()
	if err != nil {
		log.Printf("❌ [PredictAll] 加载端点失败: %v", err)
		summarize(agg)
		return agg
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, ep := range endpoints {
		spec, ok := s.registry.GetModel(ep.Key)
		if !ok {
			// 端点存在但契约未注册，按失败计入
			mu.Lock()
			agg.PerModel[ep.Key] = s.failed(ep.Key, fmt.Sprintf("unknown model: %s", ep.Key))
			mu.Unlock()
			continue
		}

		wg.Add(1)
		go func(spec *schema.ModelSpec, ep *models.ModelEndpoint) {
			defer wg.Done()

			result := s.invoke(ctx, spec, ep, input)

			mu.Lock()
			agg.PerModel[result.ModelKey] = result
			mu.Unlock()
		}(spec, ep)
	}

	wg.Wait()
	summarize(agg)

	log.Printf("🔀 [PredictAll] 完成 - 成功: %d, 失败: %d", agg.SuccessCount, agg.FailureCount)
	return agg
}

// invoke 校验输入并调用端点
// 输入已是 dataframe_split / instances 原始格式时跳过校验直接转发
func (s *Service) invoke(ctx context.Context, spec *schema.ModelSpec, ep *models.ModelEndpoint, input map[string]interface{}) *upstream.PredictionResult {
	target := upstream.InvokeTarget{
		ModelKey: spec.Key,
		URL:      ep.InvocationURL,
		Token:    ep.Token,
	}

	if isRawPayload(input) {
		result := s.client.Invoke(ctx, target, input)
		s.record(result)
		return result
	}

	validation := schema.Validate(spec, input)
	if !validation.Valid {
		return s.failed(spec.Key, strings.Join(validation.Errors, "; "))
	}

	normalized := make(map[string]interface{}, len(validation.Normalized))
	for name, value := range validation.Normalized {
		normalized[name] = value
	}

	result := s.client.Invoke(ctx, target, normalized)
	s.record(result)
	return result
}

// failed 构造失败结果并记录
func (s *Service) failed(modelKey, message string) *upstream.PredictionResult {
	result := upstream.Failed(modelKey, message)
	s.record(result)
	return result
}

// record 记录预测结果到计数器与事件日志
func (s *Service) record(result *upstream.PredictionResult) {
	if s.counter != nil {
		s.counter.RecordPrediction(result.ModelKey, result.Succeeded)
	}

	if s.events != nil && !result.Succeeded {
		// 事件落库失败只影响审计，不影响预测结果
		_ = s.events.LogError(models.EventTypePredictionFailed, result.ErrorMessage, map[string]interface{}{
			"model": result.ModelKey,
		})
	}
}

// isRawPayload 输入是否已是 Serving 原始请求格式
func isRawPayload(input map[string]interface{}) bool {
	if _, ok := input["dataframe_split"]; ok {
		return true
	}
	if _, ok := input["instances"]; ok {
		return true
	}
	return false
}
