package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Kind:       KindNotFound,
	Code:       "task_not_found",
	Message:    "task not found",
	StatusCode: http.StatusNotFound,
}

var ErrOfferNotFound = &Exception{
	Kind:       KindNotFound,
	Code:       "offer_not_found",
	Message:    "offer not found",
	StatusCode: http.StatusNotFound,
}

var ErrSkillNotFound = &Exception{
	Kind:       KindNotFound,
	Code:       "skill_not_found",
	Message:    "skill not found",
	StatusCode: http.StatusNotFound,
}
