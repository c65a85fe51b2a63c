package vetserver

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	ownersapp "github.com/Apurer/go-vet-office/internal/domains/owners/application"
	ownersports "github.com/Apurer/go-vet-office/internal/domains/owners/ports"
	petsapp "github.com/Apurer/go-vet-office/internal/domains/pets/application"
	petsports "github.com/Apurer/go-vet-office/internal/domains/pets/ports"
	recordsapp "github.com/Apurer/go-vet-office/internal/domains/records/application"
	recordsports "github.com/Apurer/go-vet-office/internal/domains/records/ports"
	apierrors "github.com/Apurer/go-vet-office/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", notFoundProblem, invalidInputProblem)

func notFoundProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ownersports.ErrNotFound) ||
		errors.Is(err, petsports.ErrNotFound) ||
		errors.Is(err, recordsports.ErrNotFound) {
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidInputProblem(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, ownersapp.ErrInvalidInput) ||
		errors.Is(err, petsapp.ErrInvalidInput) ||
		errors.Is(err, recordsapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError maps application errors to RFC 7807 responses.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondBadRequest(c *gin.Context, err error) {
	responder.BadRequest(c, err.Error())
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		responder.ValidationFailed(c, map[string]string{name: "must be an integer"})
		return 0, false
	}
	return id, true
}
