package apperror

import (
	"encoding/json"
	"net/http"
)

type response struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// WriteJSON renders the error as the API's JSON error envelope.
func WriteJSON(w http.ResponseWriter, err error) {
	appErr := From(err)

	var resp response
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	_ = json.NewEncoder(w).Encode(resp)
}
