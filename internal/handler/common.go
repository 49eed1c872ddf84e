package handler

import (
	"encoding/json"
	"net/http"

	"scrooge-bank/internal/errors"
)

type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *Error      `json:"error,omitempty"`
}

type Error struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
	Fields  []errors.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := Response{Data: data}
	json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")

	errResponse := Error{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Details: appErr.Details,
		Fields:  appErr.Fields,
	}

	// Infrastructure detail stays in the logs; clients get the code only.
	if appErr.Category == errors.CategoryInternal {
		errResponse.Message = "an unexpected error occurred"
		errResponse.Details = ""
	}

	w.WriteHeader(appErr.HTTPStatus())
	json.NewEncoder(w).Encode(Response{Error: &errResponse})
}

// writeServiceError renders a service-layer error, collapsing anything that
// is not a typed AppError into an opaque internal failure.
func writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*errors.AppError); ok {
		writeError(w, appErr)
		return
	}
	writeError(w, errors.NewStorageFailure("an unexpected error occurred", nil))
}
