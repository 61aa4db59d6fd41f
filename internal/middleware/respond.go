package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/R3E-Network/petstore/internal/errors"
)

type errorBody struct {
	Error string         `json:"error"`
	Code  string         `json:"code,omitempty"`
	Data  map[string]any `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, serviceErr *errors.ServiceError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(serviceErr.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: serviceErr.Message,
		Code:  string(serviceErr.Code),
		Data:  serviceErr.Details,
	})
}
