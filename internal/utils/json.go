package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	errs "gomoku3/internal/errors"
)

// DecodeJSONRequest decodes the body into dst and rejects unknown fields.
// Decoding failures wrap ErrBadRequest.
func DecodeJSONRequest(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", errs.ErrBadRequest, err)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", errs.ErrBadRequest, err)
	}
	return nil
}
