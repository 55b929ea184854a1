package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/arloliu/bdoc/document"
)

func drawDocument(t *rapid.T, depth int) document.Document {
	b := document.NewBuilder()
	n := rapid.IntRange(0, 6).Draw(t, "numFields")
	for range n {
		name := rapid.StringN(1, 8, -1).Filter(func(s string) bool {
			for i := 0; i < len(s); i++ {
				if s[i] == 0 {
					return false
				}
			}

			return true
		}).Draw(t, "name")

		kinds := 8
		if depth < 3 {
			kinds = 10
		}
		switch rapid.IntRange(0, kinds-1).Draw(t, "kind") {
		case 0:
			b.AppendDouble(name, rapid.Float64().Draw(t, "double"))
		case 1:
			b.AppendString(name, rapid.String().Draw(t, "string"))
		case 2:
			b.AppendBool(name, rapid.Bool().Draw(t, "bool"))
		case 3:
			b.AppendNull(name)
		case 4:
			b.AppendInt32(name, rapid.Int32().Draw(t, "int32"))
		case 5:
			b.AppendInt64(name, rapid.Int64().Draw(t, "int64"))
		case 6:
			b.AppendDatetime(name, document.Datetime(rapid.Int64().Draw(t, "datetime")))
		case 7:
			b.AppendDouble(name, rapid.SampledFrom([]float64{
				math.Inf(1), math.Inf(-1), math.MaxFloat64, math.SmallestNonzeroFloat64, 1e21, -0.5,
			}).Draw(t, "special"))
		case 8:
			b.AppendObject(name, drawDocument(t, depth+1))
		case 9:
			inner := drawDocument(t, depth+1)
			arr := document.NewArrayBuilder()
			for f := range inner.Fields() {
				arr.Append(f.Value())
			}
			b.AppendArray(name, arr.Done())
		}
	}

	return b.Done()
}

func TestProperty_TextRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		doc := drawDocument(t, 0)
		text := doc.String()

		parsed, err := ParseString(text)
		require.NoError(t, err, "text: %s", text)
		require.True(t, doc.Equal(parsed), "text: %s\nwant: %s\ngot:  %s", text, doc.Dump(), parsed.Dump())
	})
}

func TestTextRoundTrip_NaN(t *testing.T) {
	doc := document.NewBuilder().AppendDouble("n", math.NaN()).Done()
	parsed, err := ParseString(doc.String())
	require.NoError(t, err)
	require.True(t, field(t, parsed, "n").IsNaN())
}

func TestRoundTrip_ArrayElementNames(t *testing.T) {
	indexed := document.NewBuilder().
		AppendArray("a", document.FromSlice([]any{1, 2})).
		Done()
	parsed, err := Parse([]byte(indexed.String()))
	require.NoError(t, err)
	require.True(t, parsed.Equal(indexed))

	// element names other than positions are not part of the text form
	named := document.NewBuilder().
		AppendArray("a", document.AsArray(document.NewBuilder().AppendInt32("x", 1).AppendInt32("y", 2).Done())).
		Done()
	require.Equal(t, indexed.String(), named.String())

	parsed, err = Parse([]byte(named.String()))
	require.NoError(t, err)
	require.False(t, parsed.Equal(named))
	require.True(t, parsed.Equal(indexed))

	f, ok := parsed.Lookup("a", "1")
	require.True(t, ok)
	require.Equal(t, "1", f.Name())
}
