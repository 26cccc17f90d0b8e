package model

import "fmt"

type ResponseError struct {
	// 自定义错误码。
	Code int `json:"code"`
	// 请求ID。
	RequestID string `json:"requestID"`
	// Message
	Message string `json:"message"`
}

const (
	ResponseErrorBadRequest        = 400000
	ResponseErrorNotLoggedIn       = 401001
	ResponseErrorBadToken          = 401003
	ResponseErrorValidation        = 401005
	ResponseErrorNoSuchUser        = 404001
	ResponseErrorNoSuchRound       = 404002
	ResponseErrorNoSuchRoom        = 404004
	ResponseErrorNoSuchParticipant = 404005
	ResponseErrorInternal          = 500000
	ResponseErrorExternalService   = 502001
	ResponseErrorUnauthorized      = 401000
	ResponseErrorNotFound          = 404000
)

// NewResponseErrorBadRequest 参数错误。
func NewResponseErrorBadRequest() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadRequest,
		Message: "参数错误",
	}
}

// NewResponseErrorNotLoggedIn 用户未登录。
func NewResponseErrorNotLoggedIn() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotLoggedIn,
		Message: "not logged in",
	}
}

// NewResponseErrorBadToken 登录token或房间凭证错误。
func NewResponseErrorBadToken() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorBadToken,
		Message: "bad token",
	}
}

// NewResponseErrorValidation 表单校验错误。
func NewResponseErrorValidation(err error) *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorValidation,
		Message: fmt.Sprintf("validation error: %v", err),
	}
}

// NewResponseErrorNoSuchRound 轮次不存在。
func NewResponseErrorNoSuchRound() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchRound,
		Message: "no such round",
	}
}

// NewResponseErrorNoSuchRoom 房间不存在。
func NewResponseErrorNoSuchRoom() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchRoom,
		Message: "no such room",
	}
}

// NewResponseErrorNoSuchParticipant 参与者不存在。
func NewResponseErrorNoSuchParticipant() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNoSuchParticipant,
		Message: "no such participant",
	}
}

// NewResponseErrorInternal 其他内部服务错误。
func NewResponseErrorInternal() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorInternal,
		Message: "internal server error",
	}
}

// NewResponseErrorExternalService 外部服务错误。
func NewResponseErrorExternalService() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorExternalService,
		Message: "external service error",
	}
}

// NewResponseErrorUnauthorized 无权限。
func NewResponseErrorUnauthorized() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorUnauthorized,
		Message: "unauthorized",
	}
}

// NewResponseErrorNotFound 资源不存在。
func NewResponseErrorNotFound() *ResponseError {
	return &ResponseError{
		Code:    ResponseErrorNotFound,
		Message: "not found",
	}
}
