package common

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError reports a single failed field so clients can attach messages to inputs.
type FieldError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// ValidateAndDecode decodes the request body into payload and runs the struct
// validation tags. On failure it writes the client error itself and returns
// false, so handlers can simply bail out.
func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		fields := make([]FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fields = append(fields, FieldError{Key: fe.Field(), Message: fe.Error()})
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]interface{}{"errors": fields})
		return false
	}

	return true
}
