package google

import (
	"errors"

	ai "github.com/spetersoncode/blogsmith"
	"google.golang.org/genai"
)

// rpcStatusCodes maps the canonical status names genai reports to HTTP
// codes, for errors that arrive without one.
var rpcStatusCodes = map[string]int{
	"INVALID_ARGUMENT":    400,
	"FAILED_PRECONDITION": 400,
	"UNAUTHENTICATED":     401,
	"PERMISSION_DENIED":   403,
	"NOT_FOUND":           404,
	"RESOURCE_EXHAUSTED":  429,
	"INTERNAL":            500,
	"UNAVAILABLE":         503,
	"DEADLINE_EXCEEDED":   504,
}

// wrapError categorizes a genai API error. genai does not expose response
// headers, so there is never a Retry-After.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	code := apiErr.Code
	if code == 0 {
		code = rpcStatusCodes[apiErr.Status]
	}
	return ai.NewStatusError(err.Error(), code, 0, err)
}
