package document

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Datetime is a point in time stored as signed microseconds since the Unix epoch, UTC.
type Datetime int64

// DatetimeOf converts t to a Datetime, truncating below the microsecond.
func DatetimeOf(t time.Time) Datetime {
	return Datetime(t.UnixMicro())
}

// Time returns d as a UTC time.Time.
func (d Datetime) Time() time.Time {
	return time.UnixMicro(int64(d)).UTC()
}

// Micros returns the raw microsecond count.
func (d Datetime) Micros() int64 {
	return int64(d)
}

// Value is the set of Go types a field value can be extracted as.
type Value interface {
	float64 | string | bool | int32 | int64 | Datetime | Document | Array
}

// ValueOf extracts the value of f as T.
//
// The mapping between T and field types is the one of Value(): float64 reads
// Double, string reads String, and so on. Panics if f holds a different type.
//
// Example:
//
//	n := document.ValueOf[int32](f)
//	when := document.ValueOf[document.Datetime](f)
func ValueOf[T Value](f Field) T {
	var zero T
	var out any
	switch any(zero).(type) {
	case float64:
		out = f.Double()
	case string:
		out = f.StringValue()
	case bool:
		out = f.Bool()
	case int32:
		out = f.Int32()
	case int64:
		out = f.Int64()
	case Datetime:
		out = f.Datetime()
	case Document:
		out = f.Document()
	case Array:
		out = f.Array()
	default:
		panic(errors.AssertionFailedf("unsupported value type %T", zero))
	}

	return out.(T) //nolint: forcetypeassert
}
