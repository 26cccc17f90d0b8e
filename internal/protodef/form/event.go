package form

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/MananRajppout/alif/internal/protodef/model"
)

const (
	ErrUserIDRequiredMsg = "user_id 是必要的"
	ErrStatusInvalidMsg  = "status 只能为 pending/accepted/rejected"
	ErrRoomIDRequiredMsg = "room_id 是必要的"
)

// ParticipantStatusForm 报名或更新机会参与者状态。
type ParticipantStatusForm struct {
	UserID string `json:"user_id" form:"user_id"`
	Status string `json:"status" form:"status"`
}

func (f *ParticipantStatusForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.UserID, validation.Required.Error(ErrUserIDRequiredMsg)),
		validation.Field(&f.Status, validation.Required,
			validation.In(model.ParticipantStatusPending, model.ParticipantStatusAccepted, model.ParticipantStatusRejected).Error(ErrStatusInvalidMsg)),
	)
}

// VerifyInterviewerForm 面试官房间凭证校验。
type VerifyInterviewerForm struct {
	RoomID string `json:"room_id" form:"room_id"`
}

func (f *VerifyInterviewerForm) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.RoomID, validation.Required.Error(ErrRoomIDRequiredMsg)),
	)
}
