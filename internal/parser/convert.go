package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/itchyny/timefmt-go"

	rxerrors "github.com/netxfw/rxparse/pkg/errors"
)

// Value is one typed record value: string, int64, float64, time.Time or bool.
type Value = any

// booleanLiterals are the lower-cased strings converted to true. Anything else is false.
// booleanLiterals 是转换为 true 的小写字符串，其他任何值都为 false。
var booleanLiterals = map[string]struct{}{
	"yes":  {},
	"true": {},
	"1":    {},
}

// floatLiteral is the accepted double grammar: decimal or exponential notation only.
// Hex floats, digit separators, NaN and Inf are rejected.
var floatLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Convert turns one captured string into the field's typed value.
// Convert 将一个捕获的字符串转换为字段的类型化值。
func (f FieldSpec) Convert(raw string) (Value, error) {
	switch f.Kind {
	case KindString:
		return raw, nil

	case KindLong:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, rxerrors.NewConversionError(f.Name, f.Type, raw, rxerrors.ErrInvalidInteger, err)
		}
		return n, nil

	case KindDouble:
		if !floatLiteral.MatchString(raw) {
			return nil, rxerrors.NewConversionError(f.Name, f.Type, raw, rxerrors.ErrInvalidFloat, nil)
		}
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, rxerrors.NewConversionError(f.Name, f.Type, raw, rxerrors.ErrInvalidFloat, err)
		}
		return d, nil

	case KindTimestamp:
		ts, err := timefmt.Parse(raw, f.Options[OptTimeFormat])
		if err != nil {
			return nil, rxerrors.NewConversionError(f.Name, f.Type, raw, rxerrors.ErrInvalidTimestamp, err)
		}
		return ts, nil

	case KindBoolean:
		_, ok := booleanLiterals[strings.ToLower(raw)]
		return ok, nil

	default:
		return nil, rxerrors.NewConversionError(f.Name, f.Type, raw, rxerrors.ErrUnsupportedType, nil)
	}
}
