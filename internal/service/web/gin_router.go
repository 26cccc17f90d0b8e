package web

import (
	"net/http"
	"time"

	"github.com/MananRajppout/alif/internal/common/utils"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	"github.com/MananRajppout/alif/internal/service/db"
	"github.com/MananRajppout/alif/internal/service/queue"
	"github.com/MananRajppout/alif/internal/service/signal"
	"github.com/MananRajppout/alif/internal/service/web/handler"
	"github.com/MananRajppout/alif/internal/service/web/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"
)

// NewRouter 返回gin router，分流API与排队信令通道。
func NewRouter(config *utils.Config) (*gin.Engine, error) {
	// 1. 初始化GIN
	router := gin.New()
	router.Use(gin.Recovery())
	// 1.1. 全局CORS配置
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// 2. 声明Service
	// 2.1 轮次目录与参与者记录
	eventApiHandler := handler.NewEventApiHandler(*config)

	participantService, err := db.NewParticipantService(*config.Mongo, nil)
	if err != nil {
		return nil, err
	}
	accountService, err := db.NewAccountService(*config.Mongo, nil)
	if err != nil {
		return nil, err
	}

	// 2.2 排队核心：队列存储->在线会话表->协调器->信令通道
	queueStore := queue.NewMemoryStore()
	registry := signal.NewRegistry(xlog.New("queue-registry"))
	coordinator := queue.NewCoordinator(queueStore, registry, participantService, accountService, xlog.New("queue-coordinator"))
	signalConf := utils.SignalConfig{}
	if config.Signal != nil {
		signalConf = *config.Signal
	}
	signalController := signal.NewWSController(registry, coordinator, signalConf, xlog.New("queue-signal"))

	middleware.InitMiddleware(*config)

	// 3. 配置V1路径
	v1 := router.Group("/v1", addApiVersion(model.ApiVersionV1), addRequestID)
	{
		// 3.1 排队信令通道，候选人带user_id、面试官带房间凭证连接
		v1.GET("queue/ws", signalController.HandleQueueWS)

		// 3.2 面试官凭证校验，免登录
		v1.POST("events/verifyInterviewer/:token", eventApiHandler.VerifyInterviewer)
		v1.POST("events/verifyInterviewer/:token/", eventApiHandler.VerifyInterviewer)
	}

	stateLessAuth := v1.Group("", middleware.OptionalAuthenticate)
	{
		// 3.3 面试间页面数据：轮次与下一轮次
		stateLessAuth.GET("events/getRoundByRoomId/:roomId", eventApiHandler.GetRoundByRoomID)
		stateLessAuth.GET("events/getRoundByRoomId/:roomId/", eventApiHandler.GetRoundByRoomID)
	}

	auth := v1.Group("", middleware.Authenticate)
	{
		// 3.4 等待室页面数据
		auth.GET("events/getRoundById/:roundId", eventApiHandler.GetRoundByID)
		auth.GET("events/getRoundById/:roundId/", eventApiHandler.GetRoundByID)
		// 3.5 报名/录取状态更新
		auth.POST("events/registerOnOpportunity/:opportunityId", eventApiHandler.RegisterOnOpportunity)
		auth.POST("events/registerOnOpportunity/:opportunityId/", eventApiHandler.RegisterOnOpportunity)
	}

	router.NoRoute(addRequestID, returnNotFound)
	router.RedirectTrailingSlash = false

	return router, nil
}

// 增加当前接口调用版本
func addApiVersion(version model.ApiVersion) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(model.RequestApiVersion, version)
	}
}

func addRequestID(c *gin.Context) {
	requestID := ""
	if requestID = c.Request.Header.Get(model.RequestIDHeader); requestID == "" {
		requestID = utils.NewReqID()
		c.Request.Header.Set(model.RequestIDHeader, requestID)
	}
	xl := xlog.New(requestID)
	xl.Debugf("request: %s %s", c.Request.Method, c.Request.URL.Path)
	c.Set(model.XLogKey, xl)
	c.Set(model.RequestStartKey, time.Now())
}

func returnNotFound(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	xl.Debugf("%s %s: not found", c.Request.Method, c.Request.URL.Path)
	responseErr := model.NewResponseErrorNotFound()
	resp := model.NewFailResponse(*responseErr)
	c.JSON(http.StatusOK, resp)
}
