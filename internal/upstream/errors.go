package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// 失败种类常量
// 作为 PredictionResult.ErrorMessage 的前缀暴露给调用方
const (
	FailureTimeout     = "timeout"
	FailureConnection  = "connection-error"
	FailureInvalidJSON = "invalid-json-response"
)

// FailureHTTP 非 2xx 状态码的失败种类，如 http-503
func FailureHTTP(statusCode int) string {
	return fmt.Sprintf("http-%d", statusCode)
}

// classifyTransportError 将传输层错误归类为失败种类
func classifyTransportError(err error) string {
	if isTimeoutError(err) {
		return FailureTimeout
	}
	if isConnectionError(err) {
		return FailureConnection
	}
	// 其余传输错误按连接失败处理
	return FailureConnection
}

// isTimeoutError 检查是否为超时错误
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	// 检查 context.DeadlineExceeded
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// 检查网络超时
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	// 检查错误消息中的超时关键词
	errMsg := strings.ToLower(err.Error())
	timeoutKeywords := []string{"timeout", "deadline exceeded", "timed out"}
	for _, keyword := range timeoutKeywords {
		if strings.Contains(errMsg, keyword) {
			return true
		}
	}

	return false
}

// isConnectionError 检查是否为连接错误
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	// 检查网络连接错误
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	// 检查 DNS 错误
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// 检查错误消息中的连接关键词
	errMsg := strings.ToLower(err.Error())
	connectionKeywords := []string{
		"connection refused", "connection reset", "connection aborted",
		"network is unreachable", "host is unreachable",
		"no route to host", "broken pipe", "socket", "dial",
	}
	for _, keyword := range connectionKeywords {
		if strings.Contains(errMsg, keyword) {
			return true
		}
	}

	return false
}
