package dao

const (
	// CollectionAccount 存储账号信息的表。
	CollectionAccount = "accounts"
	// CollectionAccountToken 存储已登录用户的表。
	CollectionAccountToken = "account_token"

	// CollectionRound 存储面试轮次的表。
	CollectionRound = "rounds"
	// CollectionRoom 存储面试间的表。
	CollectionRoom = "rooms"

	// CollectionOpportunityParticipant 机会参与者（报名/录取）记录表。
	CollectionOpportunityParticipant = "opportunity_participants"
)
