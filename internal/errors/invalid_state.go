package errors

import "net/http"

var ErrTaskNotOpen = &Exception{
	Kind:       KindInvalidState,
	Code:       "task_not_open",
	Message:    "task is not open",
	StatusCode: http.StatusConflict,
}

var ErrTaskNotInProgress = &Exception{
	Kind:       KindInvalidState,
	Code:       "task_not_in_progress",
	Message:    "task is not in progress",
	StatusCode: http.StatusConflict,
}

var ErrOfferNotPending = &Exception{
	Kind:       KindInvalidState,
	Code:       "offer_not_pending",
	Message:    "offer is not pending",
	StatusCode: http.StatusConflict,
}
