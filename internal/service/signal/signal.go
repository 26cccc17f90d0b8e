package signal

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/MananRajppout/alif/internal/common/utils"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	"github.com/MananRajppout/alif/internal/service/queue"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/qiniu/x/xlog"
	"github.com/tidwall/gjson"
)

// WSController 排队信令通道。每个页面建立一条长连接，
// 命令入站、应答与定向事件出站都走这条连接。
type WSController struct {
	registry    *Registry
	coordinator *queue.Coordinator
	conf        utils.SignalConfig
	upgrader    websocket.Upgrader
	xl          *xlog.Logger
}

func NewWSController(registry *Registry, coordinator *queue.Coordinator, conf utils.SignalConfig, xl *xlog.Logger) *WSController {
	if xl == nil {
		xl = xlog.New("alif-queue-signal")
	}
	conf.FillDefault()
	return &WSController{
		registry:    registry,
		coordinator: coordinator,
		conf:        conf,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		xl: xl,
	}
}

// HandleQueueWS 升级websocket并绑定会话。候选人连接携带user_id；
// 面试官通过房间凭证进入时没有user_id，只收命令应答不收定向推送。
func (ctl *WSController) HandleQueueWS(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	userID := c.Query("user_id")

	conn, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		xl.Errorf("websocket upgrade failed, error %v", err)
		return
	}
	conn.SetReadLimit(ctl.conf.MaxMessageBytes)

	session := NewSession(userID, ctl.conf.SendBufferSize)
	if userID != "" {
		ctl.registry.Bind(userID, session)
	}
	xl.Infof("queue session opened, user %q", userID)

	go ctl.writePump(xl, conn, session)
	go ctl.readPump(xl, conn, session)
}

func (ctl *WSController) writePump(xl *xlog.Logger, conn *websocket.Conn, session *Session) {
	defer conn.Close()
	writeTimeout := time.Duration(ctl.conf.WriteTimeoutSecond) * time.Second
	for frame := range session.Frames() {
		if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
			xl.Errorf("failed to set write deadline, error %v", err)
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			xl.Errorf("failed to write frame, error %v", err)
			return
		}
	}
}

func (ctl *WSController) readPump(xl *xlog.Logger, conn *websocket.Conn, session *Session) {
	defer func() {
		if session.UserID() != "" {
			ctl.registry.Unbind(session.UserID(), session)
		}
		session.Close()
		conn.Close()
		xl.Infof("queue session closed, user %q", session.UserID())
	}()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			xl.Debugf("read error, error %v", err)
			return
		}
		ctl.handleCommand(xl, session, data)
	}
}

// handleCommand 解析并分发一条入站命令帧：
// {"cmd": "...", "ack": <int>, "data": {...}}
// getMyNumber/getCurrentUser/getNextParticipant 带ack的同调用应答，
// addInQueue 默认即发即弃，上游失败时回错误帧。
func (ctl *WSController) handleCommand(xl *xlog.Logger, session *Session, data []byte) {
	if !gjson.ValidBytes(data) {
		xl.Infof("bad command frame, not json")
		return
	}
	cmd := model.QueueCommand(gjson.GetBytes(data, "cmd").String())
	ack := gjson.GetBytes(data, "ack")
	args := gjson.GetBytes(data, "data").Raw

	switch cmd {
	case model.CommandAddInQueue:
		addArgs := model.AddInQueueArgs{}
		if err := json.Unmarshal([]byte(args), &addArgs); err != nil {
			xl.Infof("invalid addInQueue args, error %v", err)
			return
		}
		if err := ctl.coordinator.AddInQueue(xl, addArgs); err != nil {
			ctl.replyError(xl, session, ack, "failed to update participant status")
		}
	case model.CommandGetMyNumber:
		numberArgs := model.GetMyNumberArgs{}
		if err := json.Unmarshal([]byte(args), &numberArgs); err != nil {
			xl.Infof("invalid getMyNumber args, error %v", err)
			return
		}
		index := ctl.coordinator.PositionOf(xl, numberArgs.RoundID, numberArgs.UserID)
		ctl.reply(xl, session, ack, model.MyNumberReply{Index: index})
	case model.CommandGetCurrentUser:
		currentArgs := model.GetCurrentUserArgs{}
		if err := json.Unmarshal([]byte(args), &currentArgs); err != nil {
			xl.Infof("invalid getCurrentUser args, error %v", err)
			return
		}
		reply := ctl.coordinator.CurrentOccupant(xl, currentArgs.RoundID, currentArgs.RoomID)
		ctl.reply(xl, session, ack, reply)
	case model.CommandGetNextParticipant:
		nextArgs := model.GetNextParticipantArgs{}
		if err := json.Unmarshal([]byte(args), &nextArgs); err != nil {
			xl.Infof("invalid getNextParticipant args, error %v", err)
			return
		}
		reply := ctl.coordinator.AdvanceNext(xl, nextArgs.RoundID, nextArgs.RoomID)
		ctl.reply(xl, session, ack, reply)
	default:
		xl.Infof("unknown command %q", cmd)
	}
}

func (ctl *WSController) reply(xl *xlog.Logger, session *Session, ack gjson.Result, data interface{}) {
	if !ack.Exists() {
		return
	}
	frame, err := json.Marshal(ackFrame{Ack: ack.Int(), Data: data})
	if err != nil {
		xl.Errorf("failed to marshal ack frame, error %v", err)
		return
	}
	if err := session.TrySend(frame); err != nil {
		xl.Infof("failed to send ack %d, error %v", ack.Int(), err)
	}
}

// replyError 上游失败需要调用方可见：有ack走应答帧，否则推错误事件。
func (ctl *WSController) replyError(xl *xlog.Logger, session *Session, ack gjson.Result, message string) {
	var frame []byte
	var err error
	if ack.Exists() {
		frame, err = json.Marshal(ackFrame{Ack: ack.Int(), Error: message})
	} else {
		frame, err = json.Marshal(eventFrame{Event: model.EventQueueError, Data: map[string]string{"message": message}})
	}
	if err != nil {
		xl.Errorf("failed to marshal error frame, error %v", err)
		return
	}
	if err := session.TrySend(frame); err != nil {
		xl.Infof("failed to send error frame, error %v", err)
	}
}
