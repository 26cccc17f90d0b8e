package signal

import (
	"encoding/json"
	"errors"
	"sync"

	model "github.com/MananRajppout/alif/internal/protodef/model"

	"github.com/qiniu/x/xlog"
)

var ErrSessionClosed = errors.New("session closed")
var ErrBackpressure = errors.New("backpressure")

// eventFrame 服务端定向推送的帧。
type eventFrame struct {
	Event model.QueueEvent `json:"event"`
	Data  interface{}      `json:"data"`
}

// ackFrame 命令应答帧，Ack 与客户端命令里携带的ack对应。
type ackFrame struct {
	Ack   int64       `json:"ack"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Session 一条在线的排队信令连接。写入走带缓冲的出站通道，
// 缓冲满时丢弃该帧，命令处理永不被慢连接阻塞。
type Session struct {
	userID string
	send   chan []byte

	mu     sync.RWMutex
	closed bool
}

func NewSession(userID string, bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = 32
	}
	return &Session{
		userID: userID,
		send:   make(chan []byte, bufferSize),
	}
}

func (s *Session) UserID() string {
	return s.userID
}

// Frames 出站帧通道，由写循环消费。
func (s *Session) Frames() <-chan []byte {
	return s.send
}

func (s *Session) TrySend(frame []byte) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrSessionClosed
	}
	select {
	case s.send <- frame:
	default:
		return ErrBackpressure
	}
	return nil
}

func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.send)
}

// Registry 在线会话表，按用户ID定位推送目标。实现排队协调器的Dispatcher。
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	xl       *xlog.Logger
}

func NewRegistry(xl *xlog.Logger) *Registry {
	if xl == nil {
		xl = xlog.New("alif-signal-registry")
	}
	return &Registry{
		sessions: make(map[string]*Session),
		xl:       xl,
	}
}

// Bind 注册用户会话。同一用户重复连接时旧会话被替换并关闭。
func (r *Registry) Bind(userID string, s *Session) {
	r.mu.Lock()
	old := r.sessions[userID]
	r.sessions[userID] = s
	r.mu.Unlock()
	if old != nil && old != s {
		r.xl.Infof("user %s reconnected, closing old session", userID)
		old.Close()
	}
}

// Unbind 注销会话，仅当当前注册的还是这条会话时生效。
// 候选人掉线不出队，重连后恢复位置。
func (r *Registry) Unbind(userID string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[userID] == s {
		delete(r.sessions, userID)
	}
}

func (r *Registry) Get(userID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[userID]
	return s, ok
}

// Notify 把事件推给目标用户的在线会话，目标不在线或缓冲满时丢弃。
func (r *Registry) Notify(xl *xlog.Logger, userID string, event model.QueueEvent, data interface{}) {
	if xl == nil {
		xl = r.xl
	}
	session, ok := r.Get(userID)
	if !ok {
		xl.Infof("user %s has no live session, %s dropped", userID, event)
		return
	}
	frame, err := json.Marshal(eventFrame{Event: event, Data: data})
	if err != nil {
		xl.Errorf("failed to marshal %s event, error %v", event, err)
		return
	}
	if err := session.TrySend(frame); err != nil {
		xl.Infof("failed to push %s to user %s, error %v", event, userID, err)
	}
}
