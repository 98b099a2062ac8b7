package service

import (
	"errors"

	"github.com/lk2023060901/assistant-admin/internal/assistant/biz"
	"github.com/lk2023060901/assistant-admin/internal/assistant/gateway"
	apperrors "github.com/lk2023060901/assistant-admin/internal/pkg/errors"
)

// toAppError maps domain and gateway errors onto business codes
func toAppError(err error) error {
	var vErr *biz.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &vErr):
		return apperrors.Wrap(err, apperrors.ErrAssistantValidation, vErr.Error())
	case errors.Is(err, gateway.ErrMissingCredential):
		return apperrors.Wrap(err, apperrors.ErrAssistantCredential)
	case errors.Is(err, gateway.ErrMalformedResponse):
		return apperrors.Wrap(err, apperrors.ErrAssistantMalformed)
	case gateway.IsRemoteError(err):
		return apperrors.Wrap(err, apperrors.ErrAssistantRemote)
	case errors.Is(err, biz.ErrAssistantNotFound):
		return apperrors.Wrap(err, apperrors.ErrAssistantNotFound)
	case errors.Is(err, biz.ErrRemoteAssistantNotFound):
		return apperrors.Wrap(err, apperrors.ErrAssistantRemoteNotFound)
	case errors.Is(err, biz.ErrAlreadyImported):
		return apperrors.Wrap(err, apperrors.ErrAssistantAlreadyImported)
	case errors.Is(err, biz.ErrAssistantExists):
		return apperrors.Wrap(err, apperrors.ErrAssistantAlreadyExists)
	default:
		return apperrors.Wrap(err, apperrors.ErrInternalServer)
	}
}
