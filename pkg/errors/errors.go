// Package errors provides the error taxonomy and warning hooks shared by treeguess.
// Every structured error is wrapped with a stack trace via cockroachdb/errors and can
// describe itself to zerolog.
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Global warning handling
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		log.Printf("treeguess-warning: %v\n", w)
	}
	// set by pkg/log to avoid an import cycle
	zerologWarnFunc func(warning error)
)

// SetWarningHandler replaces the fallback handler used when no zerolog sink is set.
//
// Example:
//
//	errors.SetWarningHandler(func(w error) {
//	    // ignore warnings
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc installs the structured warning sink.
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn reports a non-fatal condition. The zerolog sink wins when installed.
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	Warnings
//
// ===========================================================================

// FeatureNamesWarning is raised when an artifact carries no feature names and
// placeholders are synthesized instead.
type FeatureNamesWarning struct {
	Source      string
	Synthesized int
}

func (w *FeatureNamesWarning) Error() string {
	return fmt.Sprintf("artifact %s has no feature names; synthesized feature_0..feature_%d", w.Source, w.Synthesized-1)
}

// MarshalZerologObject adds the warning fields to a zerolog event.
func (w *FeatureNamesWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("source", w.Source).
		Int("synthesized", w.Synthesized).
		Str("type", "FeatureNamesWarning")
}

// NewFeatureNamesWarning creates a FeatureNamesWarning.
func NewFeatureNamesWarning(source string, synthesized int) *FeatureNamesWarning {
	return &FeatureNamesWarning{Source: source, Synthesized: synthesized}
}

// ===========================================================================
//
//	Structured errors
//
// ===========================================================================

// LoadError reports a missing, malformed or inconsistent tree artifact.
// It is fatal at startup: a tree that failed validation is never served.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("treeguess: load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("treeguess: load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *LoadError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("reason", e.Reason).
		Str("type", "LoadError")
	if e.Err != nil {
		event.Str("cause", e.Err.Error())
	}
}

// NewLoadError creates a LoadError with a stack trace.
func NewLoadError(path, reason string, err error) error {
	return errors.WithStack(&LoadError{Path: path, Reason: reason, Err: err})
}

// NewLoadErrorf creates a LoadError whose reason is formatted.
func NewLoadErrorf(path, format string, args ...interface{}) error {
	return errors.WithStack(&LoadError{Path: path, Reason: fmt.Sprintf(format, args...)})
}

// NotFoundError reports a node id outside [0, NodeCount).
type NotFoundError struct {
	ID        int
	NodeCount int
}

func (e *NotFoundError) Error() string {
	if e.NodeCount == 0 {
		return fmt.Sprintf("node_id %d out of range (tree is empty)", e.ID)
	}
	return fmt.Sprintf("node_id %d out of range (0..%d)", e.ID, e.NodeCount-1)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *NotFoundError) MarshalZerologObject(event *zerolog.Event) {
	event.Int("node_id", e.ID).
		Int("node_count", e.NodeCount).
		Str("type", "NotFoundError")
}

// NewNotFoundError creates a NotFoundError with a stack trace.
func NewNotFoundError(id, nodeCount int) error {
	return errors.WithStack(&NotFoundError{ID: id, NodeCount: nodeCount})
}

// FormatError reports a value that cannot be rendered in the expected shape.
// Callers degrade to a raw representation instead of failing the request.
type FormatError struct {
	Value  interface{}
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("treeguess: cannot format %v: %s", e.Value, e.Reason)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *FormatError) MarshalZerologObject(event *zerolog.Event) {
	event.Interface("value", e.Value).
		Str("reason", e.Reason).
		Str("type", "FormatError")
}

// NewFormatError creates a FormatError with a stack trace.
func NewFormatError(value interface{}, reason string) error {
	return errors.WithStack(&FormatError{Value: value, Reason: reason})
}

// ValidationError reports a rejected parameter (configuration, CLI argument, answer).
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("treeguess: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject adds the error fields to a zerolog event.
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError creates a ValidationError with a stack trace.
func NewValidationError(param, reason string, value interface{}) error {
	return errors.WithStack(&ValidationError{ParamName: param, Reason: reason, Value: value})
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap annotates err with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf annotates err with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates an error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to err.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return As(err, &nf)
}

// ===========================================================================
//
//	Sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyTree is returned when an artifact declares zero nodes.
	ErrEmptyTree = New("empty tree")

	// ErrUnknownFormat is returned for artifact extensions with no decoder.
	ErrUnknownFormat = New("unknown artifact format")
)
