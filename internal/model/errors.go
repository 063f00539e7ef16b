package model

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocol is returned for informational or unrecognized status codes
	ErrProtocol = errors.New("protocol error")
	// ErrClient is returned for 4xx responses
	ErrClient = errors.New("client error")
	// ErrServer is returned for 5xx responses
	ErrServer = errors.New("server error")
	// ErrRedirectLimit is returned when the redirect budget is exhausted
	ErrRedirectLimit = errors.New("redirect limit reached")
	// ErrConfiguration is returned when no feed URL can be determined for a site
	ErrConfiguration = errors.New("configuration error")
	// ErrParse is returned when a fetched body is not a recognizable feed
	ErrParse = errors.New("parse error")
)

// StatusClass is the class of an HTTP status code
type StatusClass int

const (
	StatusUnknown StatusClass = iota
	StatusInformational
	StatusSuccess
	StatusRedirection
	StatusClientError
	StatusServerError
)

func (c StatusClass) String() string {
	switch c {
	case StatusInformational:
		return "1xx"
	case StatusSuccess:
		return "2xx"
	case StatusRedirection:
		return "3xx"
	case StatusClientError:
		return "4xx"
	case StatusServerError:
		return "5xx"
	default:
		return "unknown"
	}
}

// ClassifyStatus returns the class of an HTTP status code
func ClassifyStatus(code int) StatusClass {
	switch {
	case code >= 100 && code <= 199:
		return StatusInformational
	case code >= 200 && code <= 299:
		return StatusSuccess
	case code >= 300 && code <= 399:
		return StatusRedirection
	case code >= 400 && code <= 499:
		return StatusClientError
	case code >= 500 && code <= 599:
		return StatusServerError
	default:
		return StatusUnknown
	}
}

// StatusError is a fetch failure caused by the response status
type StatusError struct {
	URL        string
	StatusCode int
	Class      StatusClass
}

func (e *StatusError) Error() string {
	switch e.Class {
	case StatusInformational:
		return fmt.Sprintf("unexpected informational response %d from %s", e.StatusCode, e.URL)
	case StatusRedirection:
		return fmt.Sprintf("redirect %d from %s without Location header", e.StatusCode, e.URL)
	default:
		return fmt.Sprintf("unexpected status %d (%s) from %s", e.StatusCode, e.Class, e.URL)
	}
}

// Unwrap returns the error kind matching the status class
func (e *StatusError) Unwrap() error {
	switch e.Class {
	case StatusClientError:
		return ErrClient
	case StatusServerError:
		return ErrServer
	default:
		return ErrProtocol
	}
}
