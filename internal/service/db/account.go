package db

import (
	"github.com/MananRajppout/alif/internal/common/utils"
	errors2 "github.com/MananRajppout/alif/internal/protodef/errors"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	dao "github.com/MananRajppout/alif/internal/service/db/dao"

	"github.com/qiniu/x/xlog"
	"gopkg.in/mgo.v2"
)

// AccountService 账号只读访问。账号与登录token由主站维护，
// 本服务只做身份解析与候选人资料查询。
type AccountService struct {
	mongoClient      *mgo.Session
	accountColl      *mgo.Collection
	accountTokenColl *mgo.Collection
	xl               *xlog.Logger
}

func NewAccountService(conf utils.MongoConfig, xl *xlog.Logger) (*AccountService, error) {
	if xl == nil {
		xl = xlog.New("alif-account-service")
	}
	mongoClient, err := mgo.Dial(conf.URI)
	if err != nil {
		xl.Errorf("failed to create mongo client, error %v", err)
		return nil, err
	}
	accountColl := mongoClient.DB(conf.Database).C(dao.CollectionAccount)
	accountTokenColl := mongoClient.DB(conf.Database).C(dao.CollectionAccountToken)
	return &AccountService{
		mongoClient:      mongoClient,
		accountColl:      accountColl,
		accountTokenColl: accountTokenColl,
		xl:               xl,
	}, nil
}

func (c *AccountService) GetAccountByID(xl *xlog.Logger, id string) (*model.AccountDo, error) {
	if xl == nil {
		xl = c.xl
	}
	account := model.AccountDo{}
	err := c.accountColl.Find(map[string]interface{}{"_id": id}).One(&account)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("no such account %s", id)
			return nil, &errors2.ServerError{Code: errors2.ServerErrorUserNotfound}
		}
		xl.Errorf("failed to get account %s, error %v", id, err)
		return nil, err
	}
	return &account, nil
}

// GetIDByToken 根据token获取账号ID。如果未在已登录用户表查找到这个token，说明该token不合法。
func (c *AccountService) GetIDByToken(xl *xlog.Logger, token string) (string, error) {
	if xl == nil {
		xl = c.xl
	}
	accountTokenRecord := model.AccountTokenDo{}
	err := c.accountTokenColl.Find(map[string]interface{}{"token": token}).One(&accountTokenRecord)
	if err != nil {
		if err == mgo.ErrNotFound {
			xl.Infof("token not found")
			return "", &errors2.ServerError{Code: errors2.ServerErrorUserNotfound}
		}
		xl.Errorf("failed to get token record, error %v", err)
		return "", err
	}
	return accountTokenRecord.AccountId, nil
}
