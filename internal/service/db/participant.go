package db

import (
	"time"

	"github.com/MananRajppout/alif/internal/common/utils"
	errors2 "github.com/MananRajppout/alif/internal/protodef/errors"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	dao "github.com/MananRajppout/alif/internal/service/db/dao"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// ParticipantService 机会参与者记录：报名与录取/淘汰状态。
type ParticipantService struct {
	mongoClient     *mgo.Session
	participantColl *mgo.Collection
	xl              *xlog.Logger
}

func NewParticipantService(conf utils.MongoConfig, xl *xlog.Logger) (*ParticipantService, error) {
	if xl == nil {
		xl = xlog.New("alif-participant-service")
	}
	mongoClient, err := mgo.Dial(conf.URI)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	participantColl := mongoClient.DB(conf.Database).C(dao.CollectionOpportunityParticipant)
	return &ParticipantService{
		mongoClient:     mongoClient,
		participantColl: participantColl,
		xl:              xl,
	}, nil
}

func (s *ParticipantService) GetParticipant(xl *xlog.Logger, opportunityID string, userID string) (*model.OpportunityParticipantDo, error) {
	if xl == nil {
		xl = s.xl
	}
	participant := model.OpportunityParticipantDo{}
	err := s.participantColl.Find(bson.M{"opportunityId": opportunityID, "userId": userID}).One(&participant)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no participant %s on opportunity %s", userID, opportunityID)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorParticipantNotFound}
		}
		xl.Errorf("failed to get participant %s on opportunity %s, error %v", userID, opportunityID, err)
		return nil, err
	}
	return &participant, nil
}

// RegisterParticipant 报名：不存在则创建pending记录，存在则保持原状态。
func (s *ParticipantService) RegisterParticipant(xl *xlog.Logger, opportunityID string, userID string) (*model.OpportunityParticipantDo, error) {
	if xl == nil {
		xl = s.xl
	}
	now := time.Now()
	participant := model.OpportunityParticipantDo{
		ID:             opportunityID + "_" + userID,
		OpportunityID:  opportunityID,
		UserID:         userID,
		Status:         model.ParticipantStatusPending,
		RegisterTime:   now,
		LastModifyTime: now,
	}
	err := s.participantColl.Insert(participant)
	if err != nil {
		if mgo.IsDup(err) {
			xl.Infof("participant %s already registered on opportunity %s", userID, opportunityID)
			return s.GetParticipant(xl, opportunityID, userID)
		}
		xl.Errorf("failed to register participant %s on opportunity %s, error %v", userID, opportunityID, err)
		return nil, err
	}
	xl.Infof("user %s registered on opportunity %s", userID, opportunityID)
	return &participant, nil
}

// SetParticipantStatus 更新参与者状态为 accepted/rejected。
func (s *ParticipantService) SetParticipantStatus(xl *xlog.Logger, opportunityID string, userID string, status string) error {
	if xl == nil {
		xl = s.xl
	}
	err := s.participantColl.Update(
		bson.M{"opportunityId": opportunityID, "userId": userID},
		bson.M{"$set": bson.M{"status": status, "lastModifyTime": time.Now()}},
	)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no participant %s on opportunity %s", userID, opportunityID)
			return &errors2.ServerError{Code: errors2.ServerErrorParticipantNotFound}
		}
		xl.Errorf("failed to set status %s for participant %s on opportunity %s, error %v", status, userID, opportunityID, err)
		return &errors2.ServerError{Code: errors2.ServerErrorParticipantStatusFail}
	}
	xl.Infof("participant %s on opportunity %s status %s", userID, opportunityID, status)
	return nil
}
