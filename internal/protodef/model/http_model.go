package model

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

/*
	http_model.go: 规定API的参数与返回值的定义，***Args 表示 *** 接口的参数，***Response表示 *** 接口的返回体格式。
*/

const (
	// RequestIDHeader request ID 头部。
	RequestIDHeader = "X-Reqid"
	// XLogKey gin context中，用于获取记录请求相关日志的 xlog logger的key。
	XLogKey = "xlog-logger"

	// UserIDContextKey 存放在请求context 中的用户ID。
	UserIDContextKey = "userID"
	// UserContextKey 存放用户对象
	UserContextKey = "user"

	// RoomIDContextKey 面试官凭证校验后存放的房间ID。
	RoomIDContextKey = "roomID"

	// TokenSourceContextKey 存放在请求context 中的TOKEN获取来源
	TokenSourceContextKey = "tokenSource"
	// TOKEN获取来源
	TokenSourceFromRoomToken TokenSource = "roomToken"
	TokenSourceFromHeader    TokenSource = "header"

	// RequestStartKey 存放在gin context中的请求开始的时间戳，单位为纳秒。
	RequestStartKey = "request-start-timestamp-nano"

	// RequestApiVersion
	RequestApiVersion            = "request-api-version"
	ApiVersionV1      ApiVersion = "v1"

	// 状态码和状态信息
	ResponseStatusCodeSuccess    ResponseStatusCode    = 0
	ResponseStatusMessageSuccess ResponseStatusMessage = "success"
)

// API Version
type ApiVersion string

// token来源枚举
type TokenSource string

// 状态码和状态信息
type ResponseStatusCode int
type ResponseStatusMessage string

type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"requestId"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Code:    int(ResponseStatusCodeSuccess),
		Message: string(ResponseStatusMessageSuccess),
		Data:    data,
	}
}

func NewFailResponse(err ResponseError) *Response {
	return &Response{
		Code:    int(err.Code),
		Message: string(err.Message),
	}
}

func (r *Response) WithRequestID(requestID string) *Response {
	r.RequestID = requestID
	return r
}

func (r *Response) WithErrorMessage(message string) *Response {
	r.Message = string(message)
	return r
}

func (r *Response) Send(c *gin.Context) {
	c.JSON(http.StatusOK, r)
}

// RoundDetailResponse 房间所属轮次与同一机会的下一轮次。
type RoundDetailResponse struct {
	Round     *RoundDo `json:"round"`
	NextRound *RoundDo `json:"nextRound,omitempty"`
}

// VerifyInterviewerResponse 面试官凭证校验结果。
type VerifyInterviewerResponse struct {
	Status string `json:"status"`
	RoomID string `json:"roomId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// ParticipantStatusResponse 机会参与者状态。
type ParticipantStatusResponse struct {
	OpportunityID string `json:"opportunityId"`
	UserID        string `json:"userId"`
	Status        string `json:"status"`
}
