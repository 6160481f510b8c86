package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes ограничение на размер тела запроса
const MaxBodyBytes = 1 << 20

const msgInternalError = "Internal Server Error"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// DecodeJSON декодирует тело запроса не больше MaxBodyBytes
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty body")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// RespondJSON пишет v как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// RespondError ответ с ошибкой без кода
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondErrorWithCode ответ с ошибкой и машиночитаемым кодом
func RespondErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	RespondJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message, code string) {
	RespondErrorWithCode(w, http.StatusBadRequest, message, code)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondErrorWithCode(w, http.StatusUnauthorized, message, "unauthorized")
}

// RespondInternalError 500 с общим сообщением, детали только в логах
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
