package handler

import (
	"net/http"

	"github.com/MananRajppout/alif/internal/common/utils"
	errors2 "github.com/MananRajppout/alif/internal/protodef/errors"
	"github.com/MananRajppout/alif/internal/protodef/form"
	model "github.com/MananRajppout/alif/internal/protodef/model"
	"github.com/MananRajppout/alif/internal/service/db"

	"github.com/gin-gonic/gin"
	"github.com/qiniu/x/xlog"
)

// RoundInterface 轮次/面试间目录。
type RoundInterface interface {
	GetRoundByID(xl *xlog.Logger, roundID string) (*model.RoundDo, error)
	GetRoundByRoomID(xl *xlog.Logger, roomID string) (*model.RoundDo, *model.RoundDo, error)
	VerifyInterviewer(xl *xlog.Logger, token string, roomID string) (*model.VerifyInterviewerResponse, error)
}

// ParticipantInterface 机会参与者记录。
type ParticipantInterface interface {
	RegisterParticipant(xl *xlog.Logger, opportunityID string, userID string) (*model.OpportunityParticipantDo, error)
	SetParticipantStatus(xl *xlog.Logger, opportunityID string, userID string, status string) error
}

type EventApiHandler struct {
	Round       RoundInterface
	Participant ParticipantInterface
}

func NewEventApiHandler(conf utils.Config) *EventApiHandler {
	h := new(EventApiHandler)
	var err error
	h.Round, err = db.NewRoundService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	h.Participant, err = db.NewParticipantService(*conf.Mongo, nil)
	if err != nil {
		panic(err)
	}
	return h
}

// GetRoundByID 等待室页面数据：轮次详情。
func (h *EventApiHandler) GetRoundByID(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	roundID := c.Param("roundId")
	round, err := h.Round.GetRoundByID(xl, roundID)
	if err != nil {
		responseErr := model.NewResponseErrorNoSuchRound()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	model.NewSuccessResponse(round).WithRequestID(requestID).Send(c)
}

// GetRoundByRoomID 面试间页面数据：所属轮次与下一轮次。
func (h *EventApiHandler) GetRoundByRoomID(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	roomID := c.Param("roomId")
	round, nextRound, err := h.Round.GetRoundByRoomID(xl, roomID)
	if err != nil {
		responseErr := model.NewResponseErrorNoSuchRoom()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := model.RoundDetailResponse{
		Round:     round,
		NextRound: nextRound,
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// RegisterOnOpportunity 报名（pending）或更新录取状态（accepted/rejected）。
func (h *EventApiHandler) RegisterOnOpportunity(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	opportunityID := c.Param("opportunityId")
	args := &form.ParticipantStatusForm{}
	err := c.Bind(args)
	if err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		resp := model.NewFailResponse(*responseErr).WithRequestID(requestID)
		c.JSON(http.StatusOK, resp)
		return
	}
	if err := args.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}

	if args.Status == model.ParticipantStatusPending {
		participant, err := h.Participant.RegisterParticipant(xl, opportunityID, args.UserID)
		if err != nil {
			responseErr := model.NewResponseErrorInternal()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
		model.NewSuccessResponse(participant).WithRequestID(requestID).Send(c)
		return
	}

	err = h.Participant.SetParticipantStatus(xl, opportunityID, args.UserID, args.Status)
	if err != nil {
		if serverErr, ok := err.(*errors2.ServerError); ok && serverErr.Code == errors2.ServerErrorParticipantNotFound {
			responseErr := model.NewResponseErrorNoSuchParticipant()
			model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
			return
		}
		responseErr := model.NewResponseErrorExternalService()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	resp := model.ParticipantStatusResponse{
		OpportunityID: opportunityID,
		UserID:        args.UserID,
		Status:        args.Status,
	}
	model.NewSuccessResponse(resp).WithRequestID(requestID).Send(c)
}

// VerifyInterviewer 面试官通过邮件里的一次性凭证免登录进入面试间。
func (h *EventApiHandler) VerifyInterviewer(c *gin.Context) {
	xl := c.MustGet(model.XLogKey).(*xlog.Logger)
	requestID := xl.ReqId
	token := c.Param("token")
	args := &form.VerifyInterviewerForm{}
	err := c.Bind(args)
	if err != nil {
		xl.Infof("invalid args in body, error %v", err)
		responseErr := model.NewResponseErrorBadRequest()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	if err := args.Validate(); err != nil {
		xl.Infof("form validation error: %v", err)
		responseErr := model.NewResponseErrorValidation(err)
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	verified, err := h.Round.VerifyInterviewer(xl, token, args.RoomID)
	if err != nil {
		responseErr := model.NewResponseErrorBadToken()
		model.NewFailResponse(*responseErr).WithRequestID(requestID).Send(c)
		return
	}
	model.NewSuccessResponse(verified).WithRequestID(requestID).Send(c)
}
