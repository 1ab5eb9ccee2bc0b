package lookup

import (
	"errors"

	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
)

// Service 零件号查询服务
// 在仓储前挂了一层 TTL 内存缓存；映射表启动后只增不改，缓存命中率很高
type Service struct {
	repo  *Repository
	cache Cache
}

// NewService 创建 Service 实例
func NewService(repo *Repository) *Service {
	return &Service{
		repo:  repo,
		cache: NewMemoryCache(nil),
	}
}

// NewServiceWithCache 创建带自定义缓存的 Service 实例
func NewServiceWithCache(repo *Repository, cache Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// ResolvePartNumber 根据 (MGC5, 区域) 解析零件号
// 未命中返回 *LookupError（combination_not_found），不抛异常
func (s *Service) ResolvePartNumber(mgc5, region string) (string, error) {
	resolved, err := s.resolveByCodes(mgc5, region)
	if err != nil {
		return "", err
	}
	return resolved.PartNumber, nil
}

// ResolveFeatures 根据零件号推导特征可用性
// 反向查出所属 (MGC5, 区域)，再按零件类别应用固定策略
func (s *Service) ResolveFeatures(partNumber string) (*FeatureAvailability, error) {
	cacheKey := "part|" + partNumber
	if cached, found := s.cache.Get(cacheKey); found {
		return availabilityOf(cached), nil
	}

	mapping, err := s.repo.FindByPartNumber(partNumber)
	if err != nil {
		if errors.Is(err, ErrMappingNotFound) {
			return nil, NewPartNotFoundError(partNumber)
		}
		return nil, NewInternalError(err)
	}

	resolved := resolvedOf(mapping)
	s.cache.Set(cacheKey, resolved)

	return availabilityOf(resolved), nil
}

// CacheStats 缓存统计
func (s *Service) CacheStats() *CacheStats {
	return s.cache.Stats()
}

// Close 释放缓存资源
func (s *Service) Close() {
	if memCache, ok := s.cache.(*MemoryCache); ok {
		memCache.Close()
	}
}

// resolveByCodes 带缓存的组合查询
func (s *Service) resolveByCodes(mgc5, region string) (*ResolvedPart, error) {
	cacheKey := "codes|" + mgc5 + "|" + region
	if cached, found := s.cache.Get(cacheKey); found {
		return cached, nil
	}

	mapping, err := s.repo.FindByCodes(mgc5, region)
	if err != nil {
		if errors.Is(err, ErrMappingNotFound) {
			return nil, NewCombinationNotFoundError(mgc5, region)
		}
		return nil, NewInternalError(err)
	}

	resolved := resolvedOf(mapping)
	s.cache.Set(cacheKey, resolved)

	return resolved, nil
}

// resolvedOf 数据库记录转解析结果
func resolvedOf(mapping *models.PartMapping) *ResolvedPart {
	return &ResolvedPart{
		MGC5:         mapping.MGC5,
		Region:       mapping.Region,
		PartNumber:   mapping.PartNumber,
		PartCategory: mapping.PartCategory,
	}
}

// availabilityOf 解析结果转特征可用性
func availabilityOf(resolved *ResolvedPart) *FeatureAvailability {
	return &FeatureAvailability{
		PartNumber:   resolved.PartNumber,
		Region:       resolved.Region,
		MGC5:         resolved.MGC5,
		PartCategory: resolved.PartCategory,
		Flags:        FlagsForCategory(resolved.PartCategory),
	}
}
