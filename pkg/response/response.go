package response

import (
	"net/http"

	"github.com/go-chi/render"
)

// Envelope is the body shape shared by single-record and error responses.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	render.Status(r, code)
	render.JSON(w, r, v)
}

func OK(w http.ResponseWriter, r *http.Request, code int, msg string, data any) {
	JSON(w, r, code, Envelope{Success: true, Message: msg, Data: data})
}

func Fail(w http.ResponseWriter, r *http.Request, code int, msg string, errs map[string][]string) {
	JSON(w, r, code, Envelope{Success: false, Message: msg, Errors: errs})
}
