package errors

import (
	"errors"
	"fmt"
)

var (
	ErrConfigMissing    = errors.New("missing required configuration")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrUnmatchedLine    = errors.New("unmatched line")
	ErrInvalidInteger   = errors.New("invalid integer")
	ErrInvalidFloat     = errors.New("invalid float")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrUnsupportedType  = errors.New("unsupported type")
	ErrMissingCapture   = errors.New("missing capture group")
	ErrDriverReused     = errors.New("driver already run")
	ErrUnknownOutput    = errors.New("unknown output type")
)

// ConfigError reports a configuration problem detected before any line is processed.
// ConfigError 表示在处理任何行之前检测到的配置问题。
type ConfigError struct {
	Field string
	Value any
	Err   error // ErrConfigMissing or ErrConfigInvalid
	Cause error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("%v: field=%s", e.Err, e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf(" value=%v", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// UnmatchedLineError carries the offending line when the strict policy is active.
// UnmatchedLineError 在严格策略下携带未匹配的行。
type UnmatchedLineError struct {
	File   string
	LineNo int
	Line   string
}

func (e *UnmatchedLineError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%v: %s", ErrUnmatchedLine, e.Line)
	}
	return fmt.Sprintf("%v: %s:%d: %s", ErrUnmatchedLine, e.File, e.LineNo, e.Line)
}

func (e *UnmatchedLineError) Unwrap() error {
	return ErrUnmatchedLine
}

// ConversionError reports a field value that could not be converted to its declared type.
// ConversionError 表示字段值无法转换为声明的类型。
type ConversionError struct {
	Field string
	Type  string
	Value string
	Kind  error // one of the conversion sentinels
	Err   error // underlying parse error, may be nil
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("%v: field=%s type=%s value=%q", e.Kind, e.Field, e.Type, e.Value)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func NewMissingConfigError(field string) error {
	return &ConfigError{Field: field, Err: ErrConfigMissing}
}

func NewConfigError(field string, value interface{}) error {
	return &ConfigError{Field: field, Value: value, Err: ErrConfigInvalid}
}

func NewConfigCauseError(field string, value interface{}, cause error) error {
	return &ConfigError{Field: field, Value: value, Err: ErrConfigInvalid, Cause: cause}
}

func NewUnmatchedLineError(file string, lineNo int, line string) error {
	return &UnmatchedLineError{File: file, LineNo: lineNo, Line: line}
}

func NewConversionError(field, fieldType, value string, kind, cause error) error {
	return &ConversionError{Field: field, Type: fieldType, Value: value, Kind: kind, Err: cause}
}

