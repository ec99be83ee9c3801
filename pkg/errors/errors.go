package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNavigation represents page navigation failures
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeBrowser represents transient browser failures (timeout, stale element)
	ErrorTypeBrowser ErrorType = "browser"
	// ErrorTypeRobots represents robots.txt denials and policy fetch failures
	ErrorTypeRobots ErrorType = "robots"
	// ErrorTypeExtraction represents element extraction failures
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeSink represents event sink failures
	ErrorTypeSink ErrorType = "sink"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Target  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Target, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Target, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *ScrapeError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNavigation, ErrorTypeBrowser:
		return true
	default:
		return false
	}
}

// New creates a new ScrapeError
func New(errType ErrorType, target, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Target:  target,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNavigation creates a new navigation error
func NewNavigation(target, message string, err error) *ScrapeError {
	return New(ErrorTypeNavigation, target, message, err)
}

// NewBrowser creates a new transient browser error
func NewBrowser(target, message string, err error) *ScrapeError {
	return New(ErrorTypeBrowser, target, message, err)
}

// NewRobots creates a new robots policy error
func NewRobots(target, message string, err error) *ScrapeError {
	return New(ErrorTypeRobots, target, message, err)
}

// NewExtraction creates a new extraction error
func NewExtraction(target, message string, err error) *ScrapeError {
	return New(ErrorTypeExtraction, target, message, err)
}

// NewSink creates a new sink error
func NewSink(target, message string, err error) *ScrapeError {
	return New(ErrorTypeSink, target, message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
