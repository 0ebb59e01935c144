// internal/app/features/errors/errors.go

// Package errors renders JSON error responses and maps service sentinels
// to HTTP statuses. Every feature handler funnels failures through here so
// the API speaks one error shape.
package errors

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/MirzaKrupic/CampusConnect/internal/app/services/groupsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/postsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/recsvc"
	"github.com/MirzaKrupic/CampusConnect/internal/app/services/usersvc"
)

// response is the JSON body for every error the API returns.
type response struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Write sends a JSON error with an explicit status and code.
func Write(w http.ResponseWriter, status int, code, detail string) {
	WriteJSON(w, status, response{Error: code, Detail: detail})
}

// FromError maps a service error to its HTTP response. Known sentinels
// become 4xx with a stable code; anything else is a 503, since an
// unclassified failure from the coordination layer means a backing store
// did not answer.
func FromError(w http.ResponseWriter, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, usersvc.ErrDuplicateEmail):
		Write(w, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, usersvc.ErrAlreadyFriends):
		Write(w, http.StatusConflict, "already_friends", err.Error())
	case errors.Is(err, usersvc.ErrSelfFriend):
		Write(w, http.StatusBadRequest, "self_friend", err.Error())
	case errors.Is(err, groupsvc.ErrAlreadyMember):
		Write(w, http.StatusConflict, "already_member", err.Error())
	case errors.Is(err, postsvc.ErrNotMember):
		Write(w, http.StatusForbidden, "not_member", err.Error())
	case errors.Is(err, postsvc.ErrInvalidType):
		Write(w, http.StatusBadRequest, "invalid_post_type", err.Error())
	case errors.Is(err, usersvc.ErrNotFound),
		errors.Is(err, groupsvc.ErrNotFound),
		errors.Is(err, postsvc.ErrNotFound),
		errors.Is(err, recsvc.ErrNotFound):
		Write(w, http.StatusNotFound, "not_found", err.Error())
	default:
		if log != nil {
			log.Error("request failed on backing store", zap.Error(err))
		}
		Write(w, http.StatusServiceUnavailable, "store_unavailable",
			"a backing store did not respond")
	}
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(w http.ResponseWriter, detail string) {
	Write(w, http.StatusBadRequest, "bad_request", detail)
}

// NotFound reports a missing resource directly, without a service error.
func NotFound(w http.ResponseWriter, detail string) {
	Write(w, http.StatusNotFound, "not_found", detail)
}
