package errors

import "net/http"

var ErrInvalidOfferTerms = &Exception{
	Kind:       KindValidation,
	Code:       "invalid_offer_terms",
	Message:    "invalid offer terms",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrInvalidTaskTerms = &Exception{
	Kind:       KindValidation,
	Code:       "invalid_task_terms",
	Message:    "invalid task terms",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrInvalidSkillTerms = &Exception{
	Kind:       KindValidation,
	Code:       "invalid_skill_terms",
	Message:    "invalid skill terms",
	StatusCode: http.StatusUnprocessableEntity,
}

var ErrInvalidPayload = &Exception{
	Kind:       KindValidation,
	Code:       "invalid_payload",
	Message:    "invalid JSON payload",
	StatusCode: http.StatusBadRequest,
}
