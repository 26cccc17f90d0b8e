package middleware

import (
	"strings"

	"github.com/MananRajppout/alif/internal/common/utils"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	"github.com/MananRajppout/alif/internal/service/db"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"
)

var (
	accountService *db.AccountService
)

func InitMiddleware(conf utils.Config) {
	var err error
	accountService, err = db.NewAccountService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
}

// Authenticate 校验请求者的身份。根据Authorization:Bearer <token>校验，
// 校验失败则中断请求。
func Authenticate(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	if !fetchTokenFromHeader(xl, c) {
		responseErr := model.NewResponseErrorNotLoggedIn()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.Abort()
		resp.Send(c)
	}
}

// OptionalAuthenticate 尽力解析身份但不中断请求。
// 已登录用户走Bearer token；无登录状态的面试官根据accessToken
// （房间一次性凭证）解析其所在房间。
func OptionalAuthenticate(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	if fetchTokenFromHeader(xl, c) {
		return
	}
	roomToken := c.Query("accessToken")
	if roomToken == "" {
		return
	}
	claims, err := utils.JwtDecode(roomToken)
	if err != nil {
		xl.Debugf("failed to decode room token, error %v", err)
		return
	}
	roomID, _ := claims["room_id"].(string)
	if roomID == "" {
		xl.Debugf("room token without room_id")
		return
	}
	c.Set(model.RoomIDContextKey, roomID)
	c.Set(model.TokenSourceContextKey, model.TokenSourceFromRoomToken)
	xl.Debugf("room token resolved, room %s", roomID)
}

func fetchTokenFromHeader(xl *xlog.Logger, c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return false
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == authHeader || token == "" {
		xl.Debugf("malformed Authorization header")
		return false
	}
	userID, err := accountService.GetIDByToken(xl, token)
	if err != nil {
		xl.Debugf("token not recognized, error %v", err)
		return false
	}
	user, err := accountService.GetAccountByID(xl, userID)
	if err != nil {
		xl.Debugf("failed to get account %s, error %v", userID, err)
		return false
	}
	c.Set(model.UserContextKey, *user)
	c.Set(model.UserIDContextKey, userID)
	c.Set(model.TokenSourceContextKey, model.TokenSourceFromHeader)
	return true
}
