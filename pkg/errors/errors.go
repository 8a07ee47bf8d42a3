package errors

import "errors"

const (
	CodeSearchFailed = "SEARCH_FAILED"
	CodeFetchFailed  = "FETCH_FAILED"
)

const (
	MessageSearchFailed = "Failed to search locations. Please try again."
	MessageFetchFailed  = "Failed to fetch weather data. Please try again."
)

// WeatherError is the only error shape handed to callers outside the core.
// Error returns the user-facing message; the provider cause stays reachable
// through Unwrap for logging.
type WeatherError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *WeatherError) Error() string {
	return e.Message
}

func (e *WeatherError) Unwrap() error {
	return e.Err
}

// Wrap produces a new WeatherError instance.
func Wrap(code, message string, err error) *WeatherError {
	return &WeatherError{Code: code, Message: message, Err: err}
}

func SearchFailed(err error) *WeatherError {
	return Wrap(CodeSearchFailed, MessageSearchFailed, err)
}

func FetchFailed(err error) *WeatherError {
	return Wrap(CodeFetchFailed, MessageFetchFailed, err)
}

// IsCode helps handlers differentiate failures.
func IsCode(err error, code string) bool {
	var werr *WeatherError
	if errors.As(err, &werr) {
		return werr.Code == code
	}
	return false
}

// As extracts a WeatherError from the chain, if any.
func As(err error) (*WeatherError, bool) {
	var werr *WeatherError
	if errors.As(err, &werr) {
		return werr, true
	}
	return nil, false
}
