package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// decodeJSON reads a JSON request body into v. An empty body is accepted
// when optional is set.
func decodeJSON(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			if optional {
				return nil
			}
			return NewInvalidRequestError("request body is required")
		}
		return NewInvalidRequestError("invalid request body: " + err.Error())
	}
	return nil
}
