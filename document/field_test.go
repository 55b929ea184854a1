package document

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/bdoc/format"
)

func allTypesDocument() Document {
	return NewBuilder().
		AppendDouble("double", 2.25).
		AppendString("string", "hello").
		AppendObject("object", NewBuilder().AppendInt32("x", 1).Done()).
		AppendArray("array", FromSlice([]any{"a", "b"})).
		AppendBool("bool", true).
		AppendNull("null").
		AppendInt32("int32", -42).
		AppendDatetime("datetime", 1_700_000_000_000_000).
		AppendInt64("int64", math.MinInt64).
		Done()
}

func mustGet(t *testing.T, doc Document, name string) Field {
	t.Helper()
	f, ok := doc.Get(name)
	require.True(t, ok, "field %q", name)

	return f
}

func TestField_TypedAccessors(t *testing.T) {
	doc := allTypesDocument()

	require.Equal(t, 2.25, mustGet(t, doc, "double").Double())
	require.Equal(t, "hello", mustGet(t, doc, "string").StringValue())
	require.Equal(t, []byte("hello"), mustGet(t, doc, "string").RawString())
	require.Equal(t, 1, mustGet(t, doc, "object").Document().NumFields())
	require.Equal(t, 2, mustGet(t, doc, "array").Array().Len())
	require.True(t, mustGet(t, doc, "bool").Bool())
	require.True(t, mustGet(t, doc, "null").IsNull())
	require.Equal(t, int32(-42), mustGet(t, doc, "int32").Int32())
	require.Equal(t, Datetime(1_700_000_000_000_000), mustGet(t, doc, "datetime").Datetime())
	require.Equal(t, time.Unix(1_700_000_000, 0).UTC(), mustGet(t, doc, "datetime").Time())
	require.Equal(t, int64(math.MinInt64), mustGet(t, doc, "int64").Int64())
}

func TestField_Sizes(t *testing.T) {
	doc := allTypesDocument()

	tests := []struct {
		name      string
		valueSize int
	}{
		{"double", 8},
		{"string", 4 + len("hello") + 1},
		{"object", 12},
		{"bool", 1},
		{"null", 0},
		{"int32", 4},
		{"datetime", 8},
		{"int64", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := mustGet(t, doc, tt.name)
			require.Equal(t, tt.valueSize, f.ValueSize())
			require.Equal(t, tt.valueSize, len(f.RawValue()))
			require.Equal(t, 1+len(tt.name)+1+tt.valueSize, f.Size())
			require.Equal(t, []byte(tt.name), f.RawName())
			require.Equal(t, f.Size(), len(f.RawField()))
		})
	}
}

func TestField_TypeMismatchPanics(t *testing.T) {
	doc := allTypesDocument()
	i32 := mustGet(t, doc, "int32")

	require.Panics(t, func() { i32.Double() })
	require.Panics(t, func() { i32.StringValue() })
	require.Panics(t, func() { i32.Bool() })
	require.Panics(t, func() { i32.Int64() })
	require.Panics(t, func() { i32.Datetime() })
	require.Panics(t, func() { i32.Document() })
	require.Panics(t, func() { i32.Array() })
	require.Panics(t, func() { i32.Embedded() })
	require.Panics(t, func() { mustGet(t, doc, "string").Int32() })
	require.Panics(t, func() { mustGet(t, doc, "array").Document() })
	require.Panics(t, func() { mustGet(t, doc, "object").Array() })
	require.Panics(t, func() { mustGet(t, doc, "string").Number() })
}

func TestField_Embedded(t *testing.T) {
	doc := allTypesDocument()
	require.Equal(t, 1, mustGet(t, doc, "object").Embedded().NumFields())
	require.Equal(t, 2, mustGet(t, doc, "array").Embedded().NumFields())
}

func TestField_Number(t *testing.T) {
	doc := allTypesDocument()
	require.Equal(t, 2.25, mustGet(t, doc, "double").Number())
	require.Equal(t, -42.0, mustGet(t, doc, "int32").Number())
	require.Equal(t, float64(math.MinInt64), mustGet(t, doc, "int64").Number())

	require.Panics(t, func() { mustGet(t, doc, "string").Number() })
	require.Panics(t, func() { mustGet(t, doc, "datetime").Number() })
	require.Panics(t, func() { mustGet(t, doc, "bool").Number() })
}

func TestField_Value(t *testing.T) {
	doc := allTypesDocument()

	got := make(map[string]any)
	for f := range doc.Fields() {
		switch v := f.Value().(type) {
		case Document:
			got[f.Name()] = v.Names()
		case Array:
			got[f.Name()] = v.Len()
		default:
			got[f.Name()] = v
		}
	}

	want := map[string]any{
		"double":   2.25,
		"string":   "hello",
		"object":   []string{"x"},
		"array":    2,
		"bool":     true,
		"null":     nil,
		"int32":    int32(-42),
		"datetime": Datetime(1_700_000_000_000_000),
		"int64":    int64(math.MinInt64),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Value() mismatch (-want +got):\n%s", diff)
	}
}

func TestValueOf(t *testing.T) {
	doc := allTypesDocument()

	require.Equal(t, 2.25, ValueOf[float64](mustGet(t, doc, "double")))
	require.Equal(t, "hello", ValueOf[string](mustGet(t, doc, "string")))
	require.True(t, ValueOf[bool](mustGet(t, doc, "bool")))
	require.Equal(t, int32(-42), ValueOf[int32](mustGet(t, doc, "int32")))
	require.Equal(t, int64(math.MinInt64), ValueOf[int64](mustGet(t, doc, "int64")))
	require.Equal(t, Datetime(1_700_000_000_000_000), ValueOf[Datetime](mustGet(t, doc, "datetime")))
	require.Equal(t, 1, ValueOf[Document](mustGet(t, doc, "object")).NumFields())
	require.Equal(t, 2, ValueOf[Array](mustGet(t, doc, "array")).Len())

	require.Panics(t, func() { ValueOf[int64](mustGet(t, doc, "int32")) })
}

func TestField_SpecialDoubles(t *testing.T) {
	doc := NewBuilder().
		AppendDouble("nan", math.NaN()).
		AppendDouble("inf", math.Inf(1)).
		AppendDouble("ninf", math.Inf(-1)).
		Done()

	require.True(t, mustGet(t, doc, "nan").IsNaN())
	require.True(t, math.IsInf(mustGet(t, doc, "inf").Double(), 1))
	require.True(t, math.IsInf(mustGet(t, doc, "ninf").Double(), -1))
	require.False(t, mustGet(t, doc, "inf").IsNaN())
}

func TestField_ZeroValue(t *testing.T) {
	var f Field
	require.True(t, f.IsEOO())
	require.Equal(t, format.TypeEOO, f.Type())
	require.Equal(t, 1, f.Size())
	require.Equal(t, 0, f.ValueSize())
	require.Nil(t, f.Value())
	require.Equal(t, "EOO", f.String())
}

func TestDatetime(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 6789, time.UTC)
	d := DatetimeOf(now)
	require.Equal(t, now.UnixMicro(), d.Micros())
	require.Equal(t, now.Truncate(time.Microsecond), d.Time())

	require.Equal(t, time.Unix(0, 0).UTC(), Datetime(0).Time())
	require.Equal(t, time.Unix(-1, 0).UTC(), Datetime(-1_000_000).Time())
}
