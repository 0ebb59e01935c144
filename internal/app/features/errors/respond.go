// internal/app/features/errors/respond.go
package errors

import (
	"encoding/json"
	"net/http"
)

// WriteJSON encodes v as the response body with the given status. Encode
// failures are ignored; by that point the status line is already on the
// wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
