// cmd/detector/errors.go
package main

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	ErrorTypeModel     ErrorType = "model"
	ErrorTypeFactCheck ErrorType = "factcheck"
	ErrorTypeFeed      ErrorType = "feed"
	ErrorTypeExtract   ErrorType = "extract"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeServer    ErrorType = "server"
	ErrorTypeInternal  ErrorType = "internal"
)

// Error codes
const (
	ErrModelLoad        = "MODEL_001"
	ErrModelUnavailable = "MODEL_002"

	ErrFactCheckRequest = "FACT_001"
	ErrFactCheckParse   = "FACT_002"

	ErrFeedFetch = "FEED_001"
	ErrFeedParse = "FEED_002"

	ErrExtractFetch      = "EXTRACT_001"
	ErrExtractTooShort   = "EXTRACT_002"
	ErrExtractDisallowed = "EXTRACT_003"
	ErrExtractBadURL     = "EXTRACT_004"

	ErrConfigValidation = "CONFIG_001"
	ErrServerStart      = "SERVER_001"
)

// DetectorError is the custom error type for the application
type DetectorError struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Inner   error     `json:"-"`
}

func (e *DetectorError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("[%s-%s] %s: %v", e.Type, e.Code, e.Message, e.Inner)
	}
	return fmt.Sprintf("[%s-%s] %s", e.Type, e.Code, e.Message)
}

func (e *DetectorError) Unwrap() error {
	return e.Inner
}

// NewError creates a new DetectorError
func NewError(errType ErrorType, code string, message string, inner error) *DetectorError {
	return &DetectorError{
		Type:    errType,
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

// Common error constructors
func NewModelError(code string, message string, inner error) *DetectorError {
	return NewError(ErrorTypeModel, code, message, inner)
}

func NewFactCheckError(code string, message string, inner error) *DetectorError {
	return NewError(ErrorTypeFactCheck, code, message, inner)
}

func NewFeedError(code string, message string, inner error) *DetectorError {
	return NewError(ErrorTypeFeed, code, message, inner)
}

func NewExtractError(code string, message string, inner error) *DetectorError {
	return NewError(ErrorTypeExtract, code, message, inner)
}

func NewConfigError(code string, message string, inner error) *DetectorError {
	return NewError(ErrorTypeConfig, code, message, inner)
}

// IsTransient determines if an error is likely temporary
func IsTransient(err error) bool {
	var de *DetectorError
	if errors.As(err, &de) {
		switch de.Code {
		case ErrFactCheckRequest, ErrFeedFetch, ErrExtractFetch:
			return true
		}
	}
	return false
}

// ErrorEvent is a recorded boundary failure shown on the status endpoint
type ErrorEvent struct {
	Type    ErrorType `json:"type"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// errorLog keeps the most recent boundary failures
var errorLog = struct {
	sync.Mutex
	events []ErrorEvent
	max    int
}{max: 50}

// RecordError adds an error to the recent-error log and counters
func RecordError(err error) {
	if err == nil {
		return
	}

	event := ErrorEvent{
		Type:    ErrorTypeInternal,
		Code:    "INTERNAL_001",
		Message: err.Error(),
		Time:    time.Now(),
	}

	var de *DetectorError
	if errors.As(err, &de) {
		event.Type = de.Type
		event.Code = de.Code
		event.Message = de.Message
		if de.Inner != nil {
			event.Message = fmt.Sprintf("%s: %v", de.Message, de.Inner)
		}
	}

	errorLog.Lock()
	if len(errorLog.events) >= errorLog.max {
		errorLog.events = errorLog.events[1:]
	}
	errorLog.events = append(errorLog.events, event)
	errorLog.Unlock()

	IncrementCounter("errors")
}

// RecentErrors returns up to count recent error events, newest last
func RecentErrors(count int) []ErrorEvent {
	errorLog.Lock()
	defer errorLog.Unlock()

	if count <= 0 || count > len(errorLog.events) {
		count = len(errorLog.events)
	}
	out := make([]ErrorEvent, count)
	copy(out, errorLog.events[len(errorLog.events)-count:])
	return out
}
