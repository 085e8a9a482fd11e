// api/errors/weather_errors.go
package errors

import "errors"

var (
	ErrUpstreamData    = errors.New("upstream weather data unavailable")
	ErrUnexpectedShape = errors.New("unexpected upstream payload shape")
	ErrInternalServer  = errors.New("internal server error")
)
