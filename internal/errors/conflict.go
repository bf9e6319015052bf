package errors

import "net/http"

var ErrDuplicateOffer = &Exception{
	Kind:       KindConflict,
	Code:       "duplicate_offer",
	Message:    "provider already has an active offer on this task",
	StatusCode: http.StatusConflict,
}

var ErrOptimisticLock = &Exception{
	Kind:       KindConflict,
	Code:       "optimistic_lock",
	Message:    "optimistic locking conflict",
	StatusCode: http.StatusConflict,
}

var ErrTaskBusy = &Exception{
	Kind:       KindConflict,
	Code:       "task_busy",
	Message:    "task is being modified by another request",
	StatusCode: http.StatusConflict,
}
