package http

import (
	errs "errors"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/preconsult-backend/internal/domain/errors"
	"github.com/rafabene/preconsult-backend/internal/handlers/dto"
)

// respondError mapeia erros de domínio para respostas RFC 7807
func respondError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errors.ErrConsultationNotFound):
		dto.RenderProblem(c, dto.NotFoundErrorResponseI18n(c, "Pre-consultation"))
	case errs.Is(err, errors.ErrCommentNotFound):
		dto.RenderProblem(c, dto.NotFoundErrorResponseI18n(c, "Comment"))
	case errs.Is(err, errors.ErrUserNotFound):
		dto.RenderProblem(c, dto.NotFoundErrorResponseI18n(c, "User"))
	case errs.Is(err, errors.ErrBlankContent),
		errs.Is(err, errors.ErrValidation),
		errs.Is(err, errors.ErrInvalidEmail):
		dto.RenderProblem(c, dto.ValidationErrorResponseI18n(c, nil))
	case errs.Is(err, errors.ErrUnauthorized):
		dto.RenderProblem(c, dto.UnauthorizedErrorResponseI18n(c))
	case errs.Is(err, errors.ErrForbidden):
		dto.RenderProblem(c, dto.ForbiddenErrorResponseI18n(c))
	default:
		dto.RenderProblem(c, dto.InternalErrorResponseI18n(c))
	}
}
