package errors

import "net/http"

var ErrUnauthorized = &Exception{
	Kind:       KindUnauthorized,
	Code:       "unauthorized",
	Message:    "acting user is not allowed to perform this action",
	StatusCode: http.StatusForbidden,
}

var ErrActorRequired = &Exception{
	Kind:       KindUnauthorized,
	Code:       "actor_required",
	Message:    "acting user id is required",
	StatusCode: http.StatusUnauthorized,
}
