// Package httperrors contains the error body returned by endpoints that
// have no data to send.
package httperrors

type HTTPError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// New creates the error body for an error.
func New(err error) HTTPError {
	return HTTPError{
		Error: err.Error(),
	}
}
