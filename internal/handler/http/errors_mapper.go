package http

import (
	"errors"
	"net/http"

	"recipebox/internal/service"
	"recipebox/internal/store"
	"recipebox/internal/utils"
	"recipebox/internal/validators"
)

var errorStatusMap = map[error]int{
	// Failed credentials on the token endpoint are a client error, not an
	// authentication challenge: no credentials were ever accepted.
	service.ErrWrongPassword:           http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrEmailAlreadyExists:  http.StatusBadRequest,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrRecipeNotFound:      http.StatusNotFound,
	store.ErrCatalogItemNotSaved: http.StatusInternalServerError,
	store.ErrRecipeNotSaved:      http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	if _, ok := validators.AsValidationError(err); ok {
		return http.StatusBadRequest
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to an HTTP status and writes a {"error": ...} body.
// Internal failures are masked with the generic status text so that database
// details never leak to clients; everything else carries the mapped error's
// message.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)

	msg := http.StatusText(status)
	if status != http.StatusInternalServerError {
		if ve, ok := validators.AsValidationError(err); ok {
			msg = ve.Error()
		} else {
			for target := range errorStatusMap {
				if errors.Is(err, target) {
					msg = target.Error()
					break
				}
			}
		}
	}

	utils.WriteJSONError(w, msg, status)
}
