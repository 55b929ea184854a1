package document

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocument_String(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{"empty", NewBuilder().Done(), `{}`},
		{"int32", NewBuilder().AppendInt32("a", -1).Done(), `{"a": -1}`},
		{"int64", NewBuilder().AppendInt64("a", 5).Done(), `{"a": NumberLong(5)}`},
		{"datetime", NewBuilder().AppendDatetime("t", 1000000).Done(), `{"t": Datetime(1000000)}`},
		{"integral double", NewBuilder().AppendDouble("d", 3).Done(), `{"d": 3.0}`},
		{"fractional double", NewBuilder().AppendDouble("d", 0.5).Done(), `{"d": 0.5}`},
		{"exponent double", NewBuilder().AppendDouble("d", 1e300).Done(), `{"d": 1e+300}`},
		{"nan", NewBuilder().AppendDouble("d", math.NaN()).Done(), `{"d": NaN}`},
		{"infinity", NewBuilder().AppendDouble("d", math.Inf(1)).Done(), `{"d": Infinity}`},
		{"negative infinity", NewBuilder().AppendDouble("d", math.Inf(-1)).Done(), `{"d": -Infinity}`},
		{"bool and null", NewBuilder().AppendBool("b", false).AppendNull("n").Done(), `{"b": false, "n": null}`},
		{
			"escapes",
			NewBuilder().AppendString("s", "q\"b\\\n\t\r\b\f\x01é").Done(),
			`{"s": "q\"b\\\n\t\r\b\f\u0001é"}`,
		},
		{"escaped name", NewBuilder().AppendInt32("a\"b", 1).Done(), `{"a\"b": 1}`},
		{
			"nested",
			NewBuilder().
				AppendObject("o", NewBuilder().AppendString("k", "v").Done()).
				AppendArray("a", FromSlice([]any{1, "x", []any{}})).
				Done(),
			`{"o": {"k": "v"}, "a": [1, "x", []]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.doc.String())
		})
	}
}

func TestArray_String(t *testing.T) {
	arr := FromSlice([]any{true, nil, 2.5})
	require.Equal(t, `[true, null, 2.5]`, arr.String())
}

func TestField_String(t *testing.T) {
	doc := NewBuilder().AppendInt64("n", -3).Done()
	f, _ := doc.Get("n")
	require.Equal(t, `"n": NumberLong(-3)`, f.String())
}

func TestDocument_Dump(t *testing.T) {
	doc := NewBuilder().
		AppendInt32("a", 1).
		AppendObject("b", NewBuilder().AppendBool("c", true).Done()).
		Done()

	out := doc.Dump()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.Equal(t, "document (24 bytes)", lines[0])
	require.Equal(t, `  @4    Int32    "a" 7 bytes: 1`, lines[1])
	require.Equal(t, `  @11   Object   "b" 12 bytes`, lines[2])
	require.Equal(t, `    @4    Boolean  "c" 4 bytes: true`, lines[3])
}
