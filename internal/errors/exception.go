package errors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindInvalidState Kind = "invalid_state"
	KindValidation   Kind = "validation_error"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Exception is a failure the engine reports to its caller. Two exceptions
// match under errors.Is when they share a Code, so copies produced by
// WithDetail still match their sentinel.
type Exception struct {
	Kind       Kind
	Code       string
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func (e *Exception) Is(target error) bool {
	t, ok := target.(*Exception)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *Exception) WithDetail(detail string) *Exception {
	cp := *e
	if detail != "" {
		cp.Message = e.Message + ": " + detail
	}
	return &cp
}

func As(err error) (*Exception, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
