package model

/*
	queue_model.go: 排队信令通道的命令与事件定义。
	入站为候选人/面试官页面发来的命令，出站为定向推送给单个用户的事件。
*/

// QueueCommand 入站命令名。
type QueueCommand string

const (
	// CommandAddInQueue 报名排队，或上一轮通过后被推进下一轮队列。
	CommandAddInQueue QueueCommand = "addInQueue"
	// CommandGetMyNumber 查询自己在某轮队列中的位置。
	CommandGetMyNumber QueueCommand = "getMyNumber"
	// CommandGetCurrentUser 查询某面试间当前候选人与队列长度。
	CommandGetCurrentUser QueueCommand = "getCurrentUser"
	// CommandGetNextParticipant 面试官点击"下一位"。
	CommandGetNextParticipant QueueCommand = "getNextParticipant"
)

// QueueEvent 出站事件名。
type QueueEvent string

const (
	// EventIsMyTurn 轮到该候选人，前端跳转到面试间。
	EventIsMyTurn QueueEvent = "isMyTurn"
	// EventGoOnWaitingRoom 晋级下一轮，前端跳转到等待室。
	EventGoOnWaitingRoom QueueEvent = "goOnWaitingRoom"
	// EventGoOnResultPage 终态（录取/淘汰），前端跳转到结果页。
	EventGoOnResultPage QueueEvent = "goOnResultPage"
	// EventQueueError 上游（参与者状态更新）失败时回传给指令发起方的错误。
	EventQueueError QueueEvent = "queueError"
)

// 面试结果。
const (
	QueueResultAccepted = "accepted"
	QueueResultRejected = "rejected"
)

// AddInQueueArgs CommandAddInQueue 的参数。
// 普通入队只带 user_id/round_id；晋级时额外带 opportunity_id 和
// current_room_id；only_remove 表示终态（无下一轮），pass_true 区分通过/淘汰。
type AddInQueueArgs struct {
	UserID        string `json:"user_id"`
	RoundID       string `json:"round_id"`
	OpportunityID string `json:"opportunity_id"`
	CurrentRoomID string `json:"current_room_id"`
	OnlyRemove    bool   `json:"only_remove"`
	PassTrue      bool   `json:"pass_true"`
}

// GetMyNumberArgs CommandGetMyNumber 的参数。
type GetMyNumberArgs struct {
	UserID  string `json:"user_id"`
	RoundID string `json:"round_id"`
}

// GetCurrentUserArgs CommandGetCurrentUser 的参数。
type GetCurrentUserArgs struct {
	RoomID  string `json:"room_id"`
	RoundID string `json:"round_id"`
}

// GetNextParticipantArgs CommandGetNextParticipant 的参数。
type GetNextParticipantArgs struct {
	RoundID string `json:"round_id"`
	RoomID  string `json:"room_id"`
}

// MyNumberReply CommandGetMyNumber 的应答。不在队列中时 Index 为 -1。
type MyNumberReply struct {
	Index int `json:"index"`
}

// OccupantReply 面试间当前占用情况，CommandGetCurrentUser 与
// CommandGetNextParticipant 的应答。IsEmpty 为 true 时房间空闲。
type OccupantReply struct {
	NextUserID  string                 `json:"next_user_id"`
	IsEmpty     bool                   `json:"isEmpty"`
	QueueLength int                    `json:"queLength"`
	Profile     map[string]interface{} `json:"profile,omitempty"`
}

// IsMyTurnEvent EventIsMyTurn 的数据。
type IsMyTurnEvent struct {
	RoomID string `json:"room_id"`
}

// WaitingRoomEvent EventGoOnWaitingRoom 的数据。
type WaitingRoomEvent struct {
	RoundID string `json:"round_id"`
}

// ResultPageEvent EventGoOnResultPage 的数据。
type ResultPageEvent struct {
	OpportunityID string `json:"opportunity_id"`
	Result        string `json:"result"`
}
