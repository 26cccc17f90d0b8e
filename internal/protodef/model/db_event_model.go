package model

import (
	"encoding/json"
	"time"
)

/*
	db_event_model.go: 招聘会（虚拟面试）相关数据存储格式。
	Round/Room 文档由主站创建，本服务只读；参与者状态由本服务更新。
*/

type RoundStatusCode int

const (
	RoundStatusCodeInit  RoundStatusCode = 0
	RoundStatusCodeStart RoundStatusCode = 1
	RoundStatusCodeEnd   RoundStatusCode = 2
)

// 机会参与者状态。
const (
	ParticipantStatusPending  = "pending"
	ParticipantStatusAccepted = "accepted"
	ParticipantStatusRejected = "rejected"
)

// RoomDo 一个轮次内单个面试官的面试间。同一时刻至多一名候选人在面。
type RoomDo struct {
	ID string `json:"id" bson:"_id"`
	// 所属轮次。
	RoundID string `json:"roundId" bson:"roundId"`
	// 面试官姓名与邮箱。
	InterviewerName  string `json:"interviewerName" bson:"interviewerName"`
	InterviewerEmail string `json:"interviewerEmail" bson:"interviewerEmail"`
	// AccessToken 面试官免登录进入房间的一次性凭证。
	AccessToken string    `json:"-" bson:"accessToken"`
	CreateTime  time.Time `json:"createTime" bson:"createTime"`
}

// RoundDo 某个机会下的一轮面试。轮次按 index 排序，候选人逐轮晋级。
type RoundDo struct {
	ID string `json:"id" bson:"_id"`
	// 所属机会（职位）。
	OpportunityID string `json:"opportunityId" bson:"opportunityId"`
	Name          string `json:"name" bson:"name"`
	Description   string `json:"description" bson:"description"`
	// Index 同一机会内轮次的先后次序，从0开始。
	Index  int             `json:"index" bson:"index"`
	Status RoundStatusCode `json:"status" bson:"status"`
	// 本轮的面试间列表，存于 rooms 表，查询时由服务填充。
	Rooms      []RoomDo  `json:"rooms" bson:"-"`
	StartTime  time.Time `json:"startTime" bson:"startTime"`
	EndTime    time.Time `json:"endTime" bson:"endTime"`
	CreateTime time.Time `json:"createTime" bson:"createTime"`
}

// OpportunityParticipantDo 用户在某个机会上的报名/录取记录。
type OpportunityParticipantDo struct {
	ID             string    `json:"id" bson:"_id"`
	OpportunityID  string    `json:"opportunityId" bson:"opportunityId"`
	UserID         string    `json:"userId" bson:"userId"`
	Status         string    `json:"status" bson:"status"`
	RegisterTime   time.Time `json:"registerTime" bson:"registerTime"`
	LastModifyTime time.Time `json:"lastModifyTime" bson:"lastModifyTime"`
}

// AccountDo 用户账号信息，由主站维护，本服务只读。
type AccountDo struct {
	ID string `json:"id" bson:"_id"`
	// 用户昵称
	Nickname string `json:"nickname" bson:"nickname"`
	Email    string `json:"email" bson:"email"`
	// Avatar 头像URL地址
	Avatar string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

func (a AccountDo) Map() map[string]interface{} {
	val, _ := json.Marshal(&a)
	res := make(map[string]interface{})
	_ = json.Unmarshal(val, &res)
	return res
}

// AccountTokenDo 已登录用户的信息。
type AccountTokenDo struct {
	ID        string `json:"id" bson:"_id"`
	AccountId string `json:"accountId" bson:"accountId"`
	// Token 本次登录使用的token。
	Token          string    `json:"token" bson:"token"`
	LastModifyTime time.Time `json:"lastModifyTime"`
}
