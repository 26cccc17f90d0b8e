package db

import (
	"github.com/MananRajppout/alif/internal/common/utils"
	errors2 "github.com/MananRajppout/alif/internal/protodef/errors"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	dao "github.com/MananRajppout/alif/internal/service/db/dao"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// RoundService 轮次与面试间目录。文档由主站创建，本服务只读。
type RoundService struct {
	mongoClient *mgo.Session
	roundColl   *mgo.Collection
	roomColl    *mgo.Collection
	xl          *xlog.Logger
}

func NewRoundService(conf utils.MongoConfig, xl *xlog.Logger) (*RoundService, error) {
	if xl == nil {
		xl = xlog.New("alif-round-service")
	}
	mongoClient, err := mgo.Dial(conf.URI)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	roundColl := mongoClient.DB(conf.Database).C(dao.CollectionRound)
	roomColl := mongoClient.DB(conf.Database).C(dao.CollectionRoom)
	return &RoundService{
		mongoClient: mongoClient,
		roundColl:   roundColl,
		roomColl:    roomColl,
		xl:          xl,
	}, nil
}

func (s *RoundService) GetRoundByFields(xl *xlog.Logger, fields map[string]interface{}) (*model.RoundDo, error) {
	if xl == nil {
		xl = s.xl
	}
	round := model.RoundDo{}
	err := s.roundColl.Find(fields).One(&round)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such round for fields %v", fields)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorRoundNotFound}
		}
		xl.Errorf("failed to get round, error %v", err)
		return nil, err
	}
	rooms := []model.RoomDo{}
	err = s.roomColl.Find(bson.M{"roundId": round.ID}).Sort("createTime").All(&rooms)
	if err != nil {
		xl.Errorf("failed to list rooms of round %s, error %v", round.ID, err)
		return nil, err
	}
	round.Rooms = rooms
	return &round, nil
}

func (s *RoundService) GetRoundByID(xl *xlog.Logger, roundID string) (*model.RoundDo, error) {
	return s.GetRoundByFields(xl, map[string]interface{}{"_id": roundID})
}

func (s *RoundService) GetRoomByID(xl *xlog.Logger, roomID string) (*model.RoomDo, error) {
	if xl == nil {
		xl = s.xl
	}
	room := model.RoomDo{}
	err := s.roomColl.Find(bson.M{"_id": roomID}).One(&room)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such room %s", roomID)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorRoomNotFound}
		}
		xl.Errorf("failed to get room %s, error %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

// GetRoundByRoomID 返回房间所属轮次，以及同一机会的下一轮次（没有则为nil）。
// 下一轮次用于判断通过后是晋级还是终态录取。
func (s *RoundService) GetRoundByRoomID(xl *xlog.Logger, roomID string) (*model.RoundDo, *model.RoundDo, error) {
	if xl == nil {
		xl = s.xl
	}
	room, err := s.GetRoomByID(xl, roomID)
	if err != nil {
		return nil, nil, err
	}
	round, err := s.GetRoundByID(xl, room.RoundID)
	if err != nil {
		return nil, nil, err
	}
	nextRound, err := s.GetRoundByFields(xl, map[string]interface{}{
		"opportunityId": round.OpportunityID,
		"index":         round.Index + 1,
	})
	if err != nil {
		if serverErr, ok := err.(*errors2.ServerError); ok && serverErr.Code == errors2.ServerErrorRoundNotFound {
			return round, nil, nil
		}
		return nil, nil, err
	}
	return round, nextRound, nil
}

func (s *RoundService) UpdateRound(xl *xlog.Logger, id string, round *model.RoundDo) (*model.RoundDo, error) {
	if xl == nil {
		xl = s.xl
	}
	err := s.roundColl.Update(bson.M{"_id": id}, bson.M{"$set": round})
	if err != nil {
		xl.Errorf("failed to update round %s, error %v", id, err)
		return nil, err
	}
	return round, nil
}

// VerifyInterviewer 根据房间一次性凭证解析面试官身份。
// 凭证为主站签发的HS256 JWT，负载携带room_id与面试官姓名邮箱；
// 需与房间记录保存的凭证一致，避免旧凭证复用。
func (s *RoundService) VerifyInterviewer(xl *xlog.Logger, token string, roomID string) (*model.VerifyInterviewerResponse, error) {
	if xl == nil {
		xl = s.xl
	}
	claims, err := utils.JwtDecode(token)
	if err != nil {
		xl.Infof("failed to decode room token for room %s, error %v", roomID, err)
		return nil, &errors2.ServerError{Code: errors2.ServerErrorRoomTokenInvalid}
	}
	claimRoomID, _ := claims["room_id"].(string)
	if claimRoomID != roomID {
		xl.Infof("room token of room %s used on room %s", claimRoomID, roomID)
		return nil, &errors2.ServerError{Code: errors2.ServerErrorRoomTokenInvalid}
	}
	room, err := s.GetRoomByID(xl, roomID)
	if err != nil {
		return nil, err
	}
	if room.AccessToken != token {
		xl.Infof("stale room token for room %s", roomID)
		return nil, &errors2.ServerError{Code: errors2.ServerErrorRoomTokenInvalid}
	}
	return &model.VerifyInterviewerResponse{
		Status: "verified",
		RoomID: room.ID,
		Name:   room.InterviewerName,
		Email:  room.InterviewerEmail,
	}, nil
}
