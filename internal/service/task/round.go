package task

import (
	"time"

	model "github.com/MananRajppout/alif/internal/protodef/model"
	dao "github.com/MananRajppout/alif/internal/service/db/dao"

	"github.com/qiniu/x/log"
	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

// RoundTask 定时收尾：结束时间已过但状态未关闭的轮次置为结束。
// 内存中的等待队列不在这里清理，归队列存储的持有方处理。
type RoundTask struct {
	mongoClient *mgo.Session
	roundColl   *mgo.Collection
}

func NewRoundTask(mongoURI string, database string) (*RoundTask, error) {
	mongoClient, err := mgo.Dial(mongoURI + "/" + database)
	if err != nil {
		log.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	roundColl := mongoClient.DB(database).C(dao.CollectionRound)
	return &RoundTask{
		mongoClient: mongoClient,
		roundColl:   roundColl,
	}, nil
}

func (t *RoundTask) ListTaskRounds(dataSize int) ([]model.RoundDo, error) {
	if dataSize <= 0 {
		dataSize = 10
	}
	rounds := []model.RoundDo{}
	err := t.roundColl.Find(bson.M{"$or": []bson.M{
		{"status": model.RoundStatusCodeInit},
		{"status": model.RoundStatusCodeStart},
	}}).Sort("startTime").Limit(dataSize).All(&rounds)
	if err != nil {
		log.Errorf("failed to ListTaskRounds, error %v", err)
		return nil, err
	}
	return rounds, err
}

func (t *RoundTask) UpdateRound(round *model.RoundDo) (*model.RoundDo, error) {
	err := t.roundColl.Update(bson.M{"_id": round.ID}, bson.M{"$set": round})
	if err != nil {
		log.Errorf("failed to update round %s, error %v", round.ID, err)
		return nil, err
	}
	return round, nil
}

func (t *RoundTask) TaskForModifyRoundStatus() {
	log.Infof("taskForModifyRoundStatus run at %s", time.Now().String())

	rounds, err := t.ListTaskRounds(10)
	if err != nil {
		log.Errorf("TaskForModifyRoundStatus find rounds, error: %v", err)
		return
	}
	if len(rounds) <= 0 {
		log.Infof("taskForModifyRoundStatus find no rounds")
	}
	for _, round := range rounds {
		if !round.EndTime.IsZero() && time.Now().After(round.EndTime) {
			log.Infof("TaskForModifyRoundStatus modify status for round %s, status: %d, endTime: %s", round.ID, round.Status, round.EndTime)
			round.Status = model.RoundStatusCodeEnd
			_, err := t.UpdateRound(&round)
			if err != nil {
				log.Errorf("TaskForModifyRoundStatus modify err, %v", err)
			}
		}
	}
}
