package queue

import (
	"sync"

	model "github.com/MananRajppout/alif/internal/protodef/model"

	"github.com/qiniu/x/xlog"
)

// Dispatcher 把事件定向推送到某个用户的在线会话。
// 目标用户不在线时直接丢弃，没有持久化通知队列。
type Dispatcher interface {
	Notify(xl *xlog.Logger, userID string, event model.QueueEvent, data interface{})
}

// ParticipantInterface 机会参与者状态更新，由Mongo参与者服务实现。
type ParticipantInterface interface {
	SetParticipantStatus(xl *xlog.Logger, opportunityID string, userID string, status string) error
}

// ProfileInterface 候选人资料查询，推给面试官侧展示。
type ProfileInterface interface {
	GetAccountByID(xl *xlog.Logger, id string) (*model.AccountDo, error)
}

// Coordinator 排队状态机：入队、查位、放下一位进面试间、
// 通过后晋级下一轮或终态出结果。面试间占用状态只在协调器内存中，
// 持久的Round/Room文档属于主站。
type Coordinator struct {
	store       Store
	dispatcher  Dispatcher
	participant ParticipantInterface
	profile     ProfileInterface

	// 面试间当前占用人，""表示空闲。
	mu        sync.Mutex
	occupants map[string]string

	xl *xlog.Logger
}

func NewCoordinator(store Store, dispatcher Dispatcher, participant ParticipantInterface, profile ProfileInterface, xl *xlog.Logger) *Coordinator {
	if xl == nil {
		xl = xlog.New("alif-queue-coordinator")
	}
	return &Coordinator{
		store:       store,
		dispatcher:  dispatcher,
		participant: participant,
		profile:     profile,
		occupants:   make(map[string]string),
		xl:          xl,
	}
}

func (c *Coordinator) occupantOf(roomID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.occupants[roomID]
}

func (c *Coordinator) setOccupant(roomID string, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if userID == "" {
		delete(c.occupants, roomID)
		return
	}
	c.occupants[roomID] = userID
}

// AddInQueue 处理 CommandAddInQueue 的三种形态：
//  1. 普通入队（报名或等待室重连）：幂等追加到轮次队尾；
//  2. 晋级：先写录取状态，成功后清出当前面试间并入下一轮队尾；
//  3. 终态（only_remove）：先写录取/淘汰状态，成功后清出面试间。
//
// 状态更新失败时不做任何队列变更，错误向上层透出（§候选人不会被孤儿化）。
func (c *Coordinator) AddInQueue(xl *xlog.Logger, args model.AddInQueueArgs) error {
	if xl == nil {
		xl = c.xl
	}
	if args.OnlyRemove {
		return c.finishOccupant(xl, args)
	}
	if args.CurrentRoomID != "" {
		return c.promoteOccupant(xl, args)
	}
	if c.store.Enqueue(args.RoundID, args.UserID) {
		xl.Infof("user %s enqueued on round %s, length %d", args.UserID, args.RoundID, c.store.Length(args.RoundID))
	} else {
		xl.Debugf("user %s already queued on round %s", args.UserID, args.RoundID)
	}
	return nil
}

// finishOccupant 终态：没有下一轮，录取或淘汰后出结果页。
func (c *Coordinator) finishOccupant(xl *xlog.Logger, args model.AddInQueueArgs) error {
	if c.occupantOf(args.CurrentRoomID) == "" {
		xl.Infof("finish on room %s with no occupant, ignored", args.CurrentRoomID)
		return nil
	}
	result := model.QueueResultRejected
	if args.PassTrue {
		result = model.QueueResultAccepted
	}
	// 状态先行：失败则不动房间，调用方收到可见错误。
	if err := c.participant.SetParticipantStatus(xl, args.OpportunityID, args.UserID, result); err != nil {
		xl.Errorf("failed to set participant %s status %s, error %v", args.UserID, result, err)
		return err
	}
	c.setOccupant(args.CurrentRoomID, "")
	if args.RoundID != "" {
		c.store.Remove(args.RoundID, args.UserID)
	}
	xl.Infof("user %s finished on room %s, result %s", args.UserID, args.CurrentRoomID, result)
	c.dispatcher.Notify(xl, args.UserID, model.EventGoOnResultPage, model.ResultPageEvent{
		OpportunityID: args.OpportunityID,
		Result:        result,
	})
	return nil
}

// promoteOccupant 晋级：录取状态写成功后，清出当前面试间并进入下一轮队尾。
// 队尾入队意味着上一轮的先后优势不保留。
func (c *Coordinator) promoteOccupant(xl *xlog.Logger, args model.AddInQueueArgs) error {
	if c.occupantOf(args.CurrentRoomID) == "" {
		xl.Infof("promote on room %s with no occupant, ignored", args.CurrentRoomID)
		return nil
	}
	if err := c.participant.SetParticipantStatus(xl, args.OpportunityID, args.UserID, model.ParticipantStatusAccepted); err != nil {
		xl.Errorf("failed to set participant %s status accepted, error %v", args.UserID, err)
		return err
	}
	c.setOccupant(args.CurrentRoomID, "")
	c.store.Enqueue(args.RoundID, args.UserID)
	xl.Infof("user %s promoted to round %s, length %d", args.UserID, args.RoundID, c.store.Length(args.RoundID))
	c.dispatcher.Notify(xl, args.UserID, model.EventGoOnWaitingRoom, model.WaitingRoomEvent{
		RoundID: args.RoundID,
	})
	return nil
}

// PositionOf 只读查位。不在队列中返回 PositionNotQueued。
func (c *Coordinator) PositionOf(xl *xlog.Logger, roundID string, userID string) int {
	if xl == nil {
		xl = c.xl
	}
	return c.store.PositionOf(roundID, userID)
}

// CurrentOccupant 只读查询面试间当前候选人与队列长度。
func (c *Coordinator) CurrentOccupant(xl *xlog.Logger, roundID string, roomID string) model.OccupantReply {
	if xl == nil {
		xl = c.xl
	}
	userID := c.occupantOf(roomID)
	reply := model.OccupantReply{
		NextUserID:  userID,
		IsEmpty:     userID == "",
		QueueLength: c.store.Length(roundID),
	}
	if userID != "" {
		reply.Profile = c.profileOf(xl, userID)
	}
	return reply
}

// AdvanceNext 面试官点击"下一位"：把队首候选人放进面试间并通知其进场。
// 房间空闲时等价于首次放人；队列为空则房间转为空闲。
// 上一位候选人的去向由通过/淘汰指令决定，这里不做处理。
func (c *Coordinator) AdvanceNext(xl *xlog.Logger, roundID string, roomID string) model.OccupantReply {
	if xl == nil {
		xl = c.xl
	}
	userID, ok := c.store.PopFront(roundID)
	if !ok {
		c.setOccupant(roomID, "")
		xl.Infof("round %s queue empty, room %s now idle", roundID, roomID)
		return model.OccupantReply{IsEmpty: true, QueueLength: 0}
	}
	c.setOccupant(roomID, userID)
	length := c.store.Length(roundID)
	xl.Infof("user %s admitted to room %s on round %s, %d waiting", userID, roomID, roundID, length)
	c.dispatcher.Notify(xl, userID, model.EventIsMyTurn, model.IsMyTurnEvent{
		RoomID: roomID,
	})
	return model.OccupantReply{
		NextUserID:  userID,
		IsEmpty:     false,
		QueueLength: length,
		Profile:     c.profileOf(xl, userID),
	}
}

func (c *Coordinator) profileOf(xl *xlog.Logger, userID string) map[string]interface{} {
	account, err := c.profile.GetAccountByID(xl, userID)
	if err != nil {
		xl.Infof("failed to get account %s for occupant profile, error %v", userID, err)
		return nil
	}
	return account.Map()
}
