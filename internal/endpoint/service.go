package endpoint

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Mieluoxxx/Vegax-Predict/internal/crypto"
	"github.com/Mieluoxxx/Vegax-Predict/internal/models"
)

var (
	// ErrInvalidInput 无效输入
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidURL 无效 URL
	ErrInvalidURL = errors.New("invalid URL")
)

// Service 端点业务逻辑层
// 配置了加密密钥时，Token 以 AES-256-GCM 密文落库
type Service struct {
	repo          *Repository
	encryptionKey []byte
}

// NewService 创建 Service 实例
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceWithEncryption 创建带加密密钥的 Service 实例
func NewServiceWithEncryption(repo *Repository, encryptionKey []byte) *Service {
	return &Service{
		repo:          repo,
		encryptionKey: encryptionKey,
	}
}

// CreateEndpoint 创建端点
func (s *Service) CreateEndpoint(req CreateEndpointRequest) (*models.ModelEndpoint, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.CheckKeyExists(req.Key, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEndpointKeyExists
	}

	endpoint := &models.ModelEndpoint{
		Key:           req.Key,
		DisplayName:   req.DisplayName,
		ServedModel:   req.ServedModel,
		InvocationURL: req.InvocationURL,
		Token:         req.Token, // 将在保存前加密
		HealthStatus:  "unknown",
	}

	// 应用 Enabled（默认值 true）
	if req.Enabled != nil {
		endpoint.Enabled = *req.Enabled
	} else {
		endpoint.Enabled = true
	}

	// 加密 Token（如果配置了加密密钥）
	plainToken := endpoint.Token
	if len(s.encryptionKey) > 0 {
		sealed, err := crypto.SealToken(endpoint.Token, s.encryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt token: %w", err)
		}
		endpoint.Token = sealed
	}

	if err := s.repo.Create(endpoint); err != nil {
		return nil, err
	}

	// 返回前恢复明文 Token（Handler 负责脱敏）
	endpoint.Token = plainToken

	return endpoint, nil
}

// GetEndpoint 获取单个端点（Token 已解密）
func (s *Service) GetEndpoint(id uint) (*models.ModelEndpoint, error) {
	endpoint, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.decryptToken(endpoint); err != nil {
		return nil, err
	}

	return endpoint, nil
}

// GetEndpointByKey 根据模型 key 获取端点（Token 已解密）
func (s *Service) GetEndpointByKey(key string) (*models.ModelEndpoint, error) {
	endpoint, err := s.repo.FindByKey(key)
	if err != nil {
		return nil, err
	}

	if err := s.decryptToken(endpoint); err != nil {
		return nil, err
	}

	return endpoint, nil
}

// ListEndpoints 获取端点列表（Token 已解密，Handler 负责脱敏）
func (s *Service) ListEndpoints() ([]*models.ModelEndpoint, error) {
	endpoints, err := s.repo.FindAll()
	if err != nil {
		return nil, err
	}

	for _, endpoint := range endpoints {
		if err := s.decryptToken(endpoint); err != nil {
			return nil, err
		}
	}

	return endpoints, nil
}

// ListEnabledEndpoints 获取启用的端点（Token 已解密，供预测调用使用）
func (s *Service) ListEnabledEndpoints() ([]*models.ModelEndpoint, error) {
	endpoints, err := s.repo.FindEnabled()
	if err != nil {
		return nil, err
	}

	for _, endpoint := range endpoints {
		if err := s.decryptToken(endpoint); err != nil {
			return nil, err
		}
	}

	return endpoints, nil
}

// UpdateEndpoint 更新端点
func (s *Service) UpdateEndpoint(id uint, req UpdateEndpointRequest) (*models.ModelEndpoint, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	endpoint, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		endpoint.DisplayName = *req.DisplayName
	}
	if req.ServedModel != nil {
		endpoint.ServedModel = *req.ServedModel
	}
	if req.InvocationURL != nil {
		endpoint.InvocationURL = *req.InvocationURL
	}

	var plainToken string
	if req.Token != nil {
		plainToken = *req.Token
		if len(s.encryptionKey) > 0 {
			sealed, err := crypto.SealToken(*req.Token, s.encryptionKey)
			if err != nil {
				return nil, fmt.Errorf("failed to encrypt token: %w", err)
			}
			endpoint.Token = sealed
		} else {
			endpoint.Token = *req.Token
		}
	}

	if req.Enabled != nil {
		endpoint.Enabled = *req.Enabled
	}

	if err := s.repo.Update(endpoint); err != nil {
		return nil, err
	}

	// 返回前恢复/解密 Token（Handler 负责脱敏）
	if req.Token != nil {
		endpoint.Token = plainToken
	} else if err := s.decryptToken(endpoint); err != nil {
		return nil, err
	}

	return endpoint, nil
}

// DeleteEndpoint 删除端点
func (s *Service) DeleteEndpoint(id uint) error {
	return s.repo.Delete(id)
}

// UpdateHealthStatus 更新端点健康状态
func (s *Service) UpdateHealthStatus(id uint, healthStatus string) error {
	return s.repo.UpdateHealthStatus(id, healthStatus)
}

// CountEnabled 启用端点数量
func (s *Service) CountEnabled() (int64, error) {
	return s.repo.CountEnabled()
}

// decryptToken 就地解密端点 Token
func (s *Service) decryptToken(endpoint *models.ModelEndpoint) error {
	if len(s.encryptionKey) == 0 || endpoint.Token == "" {
		return nil
	}

	plain, err := crypto.OpenToken(endpoint.Token, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to decrypt token for endpoint %s: %w", endpoint.Key, err)
	}
	endpoint.Token = plain
	return nil
}

// validateCreateRequest 验证创建请求
func (s *Service) validateCreateRequest(req CreateEndpointRequest) error {
	if strings.TrimSpace(req.Key) == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return fmt.Errorf("%w: display_name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.ServedModel) == "" {
		return fmt.Errorf("%w: served_model is required", ErrInvalidInput)
	}
	if err := s.validateURL(req.InvocationURL); err != nil {
		return err
	}
	if strings.TrimSpace(req.Token) == "" {
		return fmt.Errorf("%w: token is required", ErrInvalidInput)
	}
	return nil
}

// validateUpdateRequest 验证更新请求
func (s *Service) validateUpdateRequest(req UpdateEndpointRequest) error {
	if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
		return fmt.Errorf("%w: display_name cannot be empty", ErrInvalidInput)
	}
	if req.ServedModel != nil && strings.TrimSpace(*req.ServedModel) == "" {
		return fmt.Errorf("%w: served_model cannot be empty", ErrInvalidInput)
	}
	if req.InvocationURL != nil {
		if err := s.validateURL(*req.InvocationURL); err != nil {
			return err
		}
	}
	if req.Token != nil && strings.TrimSpace(*req.Token) == "" {
		return fmt.Errorf("%w: token cannot be empty", ErrInvalidInput)
	}
	return nil
}

// validateURL 验证调用地址
func (s *Service) validateURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidURL, rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https", ErrInvalidURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}
