package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yukta/symposium/internal/common"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeJSON reads a single JSON object from the request body. Every failure
// wraps common.ErrValidation.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", common.ErrValidation)
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: request body is too large", common.ErrValidation)
		default:
			return fmt.Errorf("%w: malformed JSON", common.ErrValidation)
		}
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON object", common.ErrValidation)
	}
	return nil
}

// validationMessage strips the sentinel prefix so clients see only the detail.
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
}
