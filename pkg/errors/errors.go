// Package errors provides the sentinel errors shared by geoclient packages.
package errors

import stderrors "errors"

var (
	// ErrUsage indicates a missing or unknown command-line option.
	ErrUsage = stderrors.New("usage")

	// ErrInvalidHost indicates the host endpoint is not a usable URI.
	ErrInvalidHost = stderrors.New("invalid host URI")

	// ErrInvalidIdentifier indicates identifier text is not a UUID.
	ErrInvalidIdentifier = stderrors.New("invalid uuid")

	// ErrInvalidInput indicates local input (the feature file) could not be used.
	ErrInvalidInput = stderrors.New("invalid input")

	// ErrConnection indicates a transport-level failure talking to the API.
	ErrConnection = stderrors.New("API client connection error")

	// ErrResponseFormat indicates the response body did not have the expected shape.
	ErrResponseFormat = stderrors.New("unexpected response format")
)

// Class describes one error category.
type Class struct {
	Sentinel error
	Code     string
	// Usage marks failures caused by the command line rather than the run.
	Usage bool
}

// Classes lists every category, in match order.
var Classes = []Class{
	{ErrUsage, "usage", true},
	{ErrInvalidHost, "invalid_host", true},
	{ErrInvalidIdentifier, "invalid_uuid", true},
	{ErrInvalidInput, "invalid_input", false},
	{ErrConnection, "connection", false},
	{ErrResponseFormat, "response_format", false},
}

// Classify returns the first class err matches.
func Classify(err error) (Class, bool) {
	for _, c := range Classes {
		if stderrors.Is(err, c.Sentinel) {
			return c, true
		}
	}
	return Class{}, false
}

// Code returns the class code for err: "ok" for nil, "error" when err
// matches no class.
func Code(err error) string {
	if err == nil {
		return "ok"
	}
	if c, ok := Classify(err); ok {
		return c.Code
	}
	return "error"
}
