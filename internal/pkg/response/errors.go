// internal/pkg/response/errors.go
package response

import (
	"errors"
	"net/http"

	xerrors "aquafarm-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// FromError maps the application error taxonomy onto HTTP statuses. A
// SequenceError additionally reports which steps of the chain committed so
// the operator can reconcile by hand.
func FromError(c *gin.Context, message string, err error) {
	var seqErr *xerrors.SequenceError
	if errors.As(err, &seqErr) {
		Error(c, http.StatusInternalServerError, message, err, gin.H{
			"operation":       seqErr.Op,
			"completed_steps": seqErr.Completed,
			"failed_step":     seqErr.Step,
		})
		return
	}

	switch {
	case errors.Is(err, xerrors.ErrValidation):
		Error(c, http.StatusBadRequest, message, err)
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, message, err)
	case errors.Is(err, xerrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, message, err)
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, message, err)
	case errors.Is(err, xerrors.ErrDuplicateReference),
		errors.Is(err, xerrors.ErrDuplicateEntry),
		errors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, message, err)
	case errors.Is(err, xerrors.ErrInsufficientStock):
		Error(c, http.StatusUnprocessableEntity, message, err)
	default:
		Error(c, http.StatusInternalServerError, message, err)
	}
}
