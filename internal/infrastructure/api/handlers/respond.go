package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mufasadev/easypay-receipts/internal/errors"
)

// maxBodyBytes caps a decoded request body.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// decodeJSON reads the request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
	if err != nil {
		return errors.NewBadRequestError(errors.ErrInvalidRequestBody)
	}
	return nil
}
