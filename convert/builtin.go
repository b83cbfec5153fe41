package convert

import (
	"encoding/base64"
	"math/big"
	"net/netip"
	"net/url"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sblinch/kdl-go/document"
)

// Decimal wraps shopspring/decimal.Decimal so it can round-trip through the printer via ToKDL,
// backing the `decimal`/`decimal64`/`decimal128` reserved tags (§6).
type Decimal struct{ decimal.Decimal }

func (d Decimal) ToKDL() (*document.Value, error) {
	v := document.NewString(d.Decimal.String())
	v.Tag = "decimal"
	return v, nil
}

// DateTime wraps time.Time for the `date-time` reserved tag, printed as RFC3339.
type DateTime struct{ time.Time }

func (d DateTime) ToKDL() (*document.Value, error) {
	v := document.NewString(d.Time.Format(time.RFC3339))
	v.Tag = "date-time"
	return v, nil
}

// Date wraps time.Time for the `date` reserved tag, printed as an ISO-8601 calendar date.
type Date struct{ time.Time }

func (d Date) ToKDL() (*document.Value, error) {
	v := document.NewString(d.Time.Format("2006-01-02"))
	v.Tag = "date"
	return v, nil
}

// Time wraps time.Time for the `time` reserved tag, printed as an ISO-8601 time-of-day.
type Time struct{ time.Time }

func (t Time) ToKDL() (*document.Value, error) {
	v := document.NewString(t.Time.Format("15:04:05"))
	v.Tag = "time"
	return v, nil
}

// IPAddr wraps netip.Addr for the `ipv4`/`ipv6` reserved tags.
type IPAddr struct{ netip.Addr }

func (a IPAddr) ToKDL() (*document.Value, error) {
	v := document.NewString(a.Addr.String())
	if a.Addr.Is4() {
		v.Tag = "ipv4"
	} else {
		v.Tag = "ipv6"
	}
	return v, nil
}

// URL wraps *url.URL for the `url` reserved tag.
type URL struct{ *url.URL }

func (u URL) ToKDL() (*document.Value, error) {
	v := document.NewString(u.URL.String())
	v.Tag = "url"
	return v, nil
}

// UUID wraps uuid.UUID for the `uuid` reserved tag.
type UUID struct{ uuid.UUID }

func (u UUID) ToKDL() (*document.Value, error) {
	v := document.NewString(u.UUID.String())
	v.Tag = "uuid"
	return v, nil
}

// Regex wraps *regexp.Regexp for the `regex` reserved tag, printed as a raw string so the
// pattern's backslashes survive without doubling.
type Regex struct{ *regexp.Regexp }

func (r Regex) ToKDL() (*document.Value, error) {
	v := document.NewRawString(r.Regexp.String(), 0)
	v.Tag = "regex"
	return v, nil
}

// Bytes wraps []byte for the `base64` reserved tag.
type Bytes []byte

func (b Bytes) ToKDL() (*document.Value, error) {
	v := document.NewString(base64.StdEncoding.EncodeToString(b))
	v.Tag = "base64"
	return v, nil
}

// ApplyBuiltinTag implements the reserved tag table of §6: given the tag text and the value it
// annotates, it returns the host-native replacement, or ok=false if tag is not one of the
// reserved names or the value's kind is not one the tag converts (e.g. a string tagged u8, or a
// non-Decimal number tagged i32); in that case the parser leaves the value as-is.
func ApplyBuiltinTag(tag string, v *document.Value, frag ParseFragment) (result interface{}, ok bool, err error) {
	switch tag {
	case "i8":
		return sizedInt(v, frag, 8, false)
	case "i16":
		return sizedInt(v, frag, 16, false)
	case "i32":
		return sizedInt(v, frag, 32, false)
	case "i64":
		return sizedInt(v, frag, 64, false)
	case "u8":
		return sizedInt(v, frag, 8, true)
	case "u16":
		return sizedInt(v, frag, 16, true)
	case "u32":
		return sizedInt(v, frag, 32, true)
	case "u64":
		return sizedInt(v, frag, 64, true)
	case "f32":
		return sizedFloat(v, frag, 32)
	case "f64":
		return sizedFloat(v, frag, 64)
	case "decimal", "decimal64", "decimal128":
		return builtinDecimal(v, frag)
	case "date-time":
		t, err := parseTimeValue(v, frag, time.RFC3339)
		if err != nil {
			return nil, false, err
		}
		return DateTime{t}, true, nil
	case "date":
		t, err := parseTimeValue(v, frag, "2006-01-02")
		if err != nil {
			return nil, false, err
		}
		return Date{t}, true, nil
	case "time":
		t, err := parseTimeValue(v, frag, "15:04:05")
		if err != nil {
			return nil, false, err
		}
		return Time{t}, true, nil
	case "ipv4", "ipv6":
		return builtinIPAddr(v, frag)
	case "url":
		return builtinURL(v, frag)
	case "uuid":
		return builtinUUID(v, frag)
	case "regex":
		return builtinRegex(v, frag)
	case "base64":
		return builtinBase64(v, frag)
	default:
		return nil, false, nil
	}
}

func valueText(v *document.Value) (string, bool) {
	switch v.Kind {
	case document.KindString, document.KindRawString:
		return v.Text, true
	default:
		return "", false
	}
}

func sizedInt(v *document.Value, frag ParseFragment, bits int, unsigned bool) (interface{}, bool, error) {
	if v.Kind != document.KindDecimal || v.IsFloat || v.Int == nil {
		return nil, false, nil
	}
	if unsigned {
		if v.Int.Sign() < 0 || !v.Int.IsUint64() {
			return nil, false, frag.Error("value out of range for u%d", bits)
		}
		n := v.Int.Uint64()
		if bits < 64 && n >= uint64(1)<<uint(bits) {
			return nil, false, frag.Error("value out of range for u%d", bits)
		}
		switch bits {
		case 8:
			return uint8(n), true, nil
		case 16:
			return uint16(n), true, nil
		case 32:
			return uint32(n), true, nil
		default:
			return n, true, nil
		}
	}
	if !v.Int.IsInt64() {
		return nil, false, frag.Error("value out of range for i%d", bits)
	}
	n := v.Int.Int64()
	if bits < 64 {
		lim := int64(1) << uint(bits-1)
		if n < -lim || n >= lim {
			return nil, false, frag.Error("value out of range for i%d", bits)
		}
	}
	switch bits {
	case 8:
		return int8(n), true, nil
	case 16:
		return int16(n), true, nil
	case 32:
		return int32(n), true, nil
	default:
		return n, true, nil
	}
}

func sizedFloat(v *document.Value, frag ParseFragment, bits int) (interface{}, bool, error) {
	if v.Kind != document.KindDecimal {
		return nil, false, nil
	}
	var f float64
	if v.IsFloat && v.Float != nil {
		f, _ = v.Float.Float64()
	} else if v.Int != nil {
		f, _ = new(big.Float).SetInt(v.Int).Float64()
	}
	if bits == 32 {
		return float32(f), true, nil
	}
	return f, true, nil
}

func builtinDecimal(v *document.Value, frag ParseFragment) (interface{}, bool, error) {
	if text, ok := valueText(v); ok {
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, false, frag.Error("invalid decimal: %s", err.Error())
		}
		return Decimal{d}, true, nil
	}
	if v.Kind == document.KindDecimal {
		if v.IsFloat && v.Float != nil {
			d, err := decimal.NewFromString(v.Float.Text('f', -1))
			if err != nil {
				return nil, false, frag.Error("invalid decimal: %s", err.Error())
			}
			return Decimal{d}, true, nil
		}
		if v.Int != nil {
			d := decimal.NewFromBigInt(v.Int, int32(v.Exponent))
			return Decimal{d}, true, nil
		}
	}
	return nil, false, nil
}

func parseTimeValue(v *document.Value, frag ParseFragment, layout string) (time.Time, error) {
	text, ok := valueText(v)
	if !ok {
		return time.Time{}, frag.Error("expected string value for time-typed tag")
	}
	t, err := time.Parse(layout, text)
	if err != nil {
		return time.Time{}, frag.Error("invalid time value: %s", err.Error())
	}
	return t, nil
}

func builtinIPAddr(v *document.Value, frag ParseFragment) (interface{}, bool, error) {
	text, ok := valueText(v)
	if !ok {
		return nil, false, nil
	}
	addr, err := netip.ParseAddr(text)
	if err != nil {
		return nil, false, frag.Error("invalid IP address: %s", err.Error())
	}
	return IPAddr{addr}, true, nil
}

func builtinURL(v *document.Value, frag ParseFragment) (interface{}, bool, error) {
	text, ok := valueText(v)
	if !ok {
		return nil, false, nil
	}
	u, err := url.Parse(text)
	if err != nil {
		return nil, false, frag.Error("invalid URL: %s", err.Error())
	}
	return URL{u}, true, nil
}

func builtinUUID(v *document.Value, frag ParseFragment) (interface{}, bool, error) {
	text, ok := valueText(v)
	if !ok {
		return nil, false, nil
	}
	id, err := uuid.Parse(text)
	if err != nil {
		return nil, false, frag.Error("invalid UUID: %s", err.Error())
	}
	return UUID{id}, true, nil
}

func builtinRegex(v *document.Value, frag ParseFragment) (interface{}, bool, error) {
	text, ok := valueText(v)
	if !ok {
		return nil, false, nil
	}
	re, err := regexp.Compile(text)
	if err != nil {
		return nil, false, frag.Error("invalid regex: %s", err.Error())
	}
	return Regex{re}, true, nil
}

func builtinBase64(v *document.Value, frag ParseFragment) (interface{}, bool, error) {
	text, ok := valueText(v)
	if !ok {
		return nil, false, nil
	}
	b, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, false, frag.Error("invalid base64: %s", err.Error())
	}
	return Bytes(b), true, nil
}
