package errors

import (
	"errors"
	"strconv"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinelErrors := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrConfigMissing", ErrConfigMissing, "missing required configuration"},
		{"ErrConfigInvalid", ErrConfigInvalid, "invalid configuration"},
		{"ErrUnmatchedLine", ErrUnmatchedLine, "unmatched line"},
		{"ErrInvalidInteger", ErrInvalidInteger, "invalid integer"},
		{"ErrInvalidFloat", ErrInvalidFloat, "invalid float"},
		{"ErrInvalidTimestamp", ErrInvalidTimestamp, "invalid timestamp"},
		{"ErrUnsupportedType", ErrUnsupportedType, "unsupported type"},
		{"ErrMissingCapture", ErrMissingCapture, "missing capture group"},
		{"ErrDriverReused", ErrDriverReused, "driver already run"},
		{"ErrUnknownOutput", ErrUnknownOutput, "unknown output type"},
	}

	for _, tc := range sentinelErrors {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err == nil {
				t.Errorf("%s is nil", tc.name)
				return
			}
			if tc.err.Error() != tc.msg {
				t.Errorf("%s: got %q, want %q", tc.name, tc.err.Error(), tc.msg)
			}
		})
	}
}

// TestConfigError tests message format and unwrapping of ConfigError
// TestConfigError 测试 ConfigError 的消息格式与解包
func TestConfigError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		sentinel error
	}{
		{
			name:     "missing field",
			err:      NewMissingConfigError("format"),
			want:     "missing required configuration: field=format",
			sentinel: ErrConfigMissing,
		},
		{
			name:     "invalid value",
			err:      NewConfigError("output.type", "kafka"),
			want:     "invalid configuration: field=output.type value=kafka",
			sentinel: ErrConfigInvalid,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Error() != tc.want {
				t.Errorf("got %q, want %q", tc.err.Error(), tc.want)
			}
			if !errors.Is(tc.err, tc.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tc.err, tc.sentinel)
			}
			var cfgErr *ConfigError
			if !errors.As(tc.err, &cfgErr) {
				t.Error("errors.As should find *ConfigError")
			}
		})
	}
}

func TestConfigErrorCause(t *testing.T) {
	cause := errors.New("missing closing )")
	err := NewConfigCauseError("format", "(", cause)

	if !errors.Is(err, ErrConfigInvalid) {
		t.Error("should match ErrConfigInvalid")
	}
	if !errors.Is(err, cause) {
		t.Error("should match the cause")
	}
	want := "invalid configuration: field=format value=(: missing closing )"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

// TestUnmatchedLineError tests the offending line is carried in the message
// TestUnmatchedLineError 测试错误消息中包含未匹配的行
func TestUnmatchedLineError(t *testing.T) {
	err := NewUnmatchedLineError("access.log", 3, "garbage")
	if err.Error() != "unmatched line: access.log:3: garbage" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, ErrUnmatchedLine) {
		t.Error("should match ErrUnmatchedLine")
	}

	bare := NewUnmatchedLineError("", 0, "garbage")
	if bare.Error() != "unmatched line: garbage" {
		t.Errorf("unexpected message: %q", bare.Error())
	}
}

func TestConversionError(t *testing.T) {
	_, cause := strconv.ParseInt("abc", 10, 64)
	err := NewConversionError("status", "long", "abc", ErrInvalidInteger, cause)

	if !errors.Is(err, ErrInvalidInteger) {
		t.Error("should match ErrInvalidInteger")
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Error("should match strconv.ErrSyntax through the cause")
	}
	if errors.Is(err, ErrInvalidFloat) {
		t.Error("should not match ErrInvalidFloat")
	}

	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatal("errors.As should find *ConversionError")
	}
	if convErr.Field != "status" || convErr.Type != "long" || convErr.Value != "abc" {
		t.Errorf("unexpected fields: %+v", convErr)
	}

	noCause := NewConversionError("id", "uuid", "x", ErrUnsupportedType, nil)
	want := `unsupported type: field=id type=uuid value="x"`
	if noCause.Error() != want {
		t.Errorf("got %q, want %q", noCause.Error(), want)
	}
}
