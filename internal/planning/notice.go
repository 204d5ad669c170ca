package planning

import (
	appErrors "github.com/noah-isme/trainer-planning-api/pkg/errors"
)

// NoticeKind classifies a user-visible message.
type NoticeKind string

const (
	NoticeSuccess    NoticeKind = "success"
	NoticeValidation NoticeKind = "validation"
	NoticeConflict   NoticeKind = "conflict"
	NoticeNetwork    NoticeKind = "network"
	NoticeError      NoticeKind = "error"
)

// Notice is the toast surfaced after an action.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// NoticeFromError converts a failure into the message shown to the user.
func NoticeFromError(err error) Notice {
	appErr := appErrors.FromError(err)
	switch appErr.Code {
	case appErrors.ErrValidation.Code:
		return Notice{Kind: NoticeValidation, Message: appErr.Message}
	case appErrors.ErrConflict.Code:
		return Notice{Kind: NoticeConflict, Message: appErr.Message}
	case appErrors.ErrNetwork.Code:
		return Notice{Kind: NoticeNetwork, Message: appErr.Message}
	default:
		return Notice{Kind: NoticeError, Message: appErr.Message}
	}
}

func validationError(message string) error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}
