// Package response holds the JSON envelopes shared by every handler of the
// eventos API.
package response

// APIResponse wraps mutation acknowledgements; PATCH handlers return it with
// just Success set, which marshals to {"success":true}.
type APIResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
}

// ErrorResponse is the {"error": "..."} shape every failure answers with.
type ErrorResponse struct {
	Error string `json:"error"`
}
