package bdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bdoc/errs"
	"github.com/arloliu/bdoc/internal/hash"
	"github.com/arloliu/bdoc/parser"
)

func TestNewBuilder(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := NewBuilder().
		AppendString("host", "server1").
		AppendInt32("cpu", 4).
		AppendTime("booted", when).
		Done()

	require.Equal(t, 3, doc.NumFields())
	f, ok := doc.Get("booted")
	require.True(t, ok)
	require.Equal(t, when, f.Time())
}

func TestNewArrayBuilder(t *testing.T) {
	arr := NewArrayBuilder().AppendInt32(1).AppendInt32(2).Done()
	require.Equal(t, 2, arr.Len())
	require.Equal(t, "[1, 2]", arr.String())
}

func TestFromText(t *testing.T) {
	doc, err := FromText(`{host: "server1", cpu: 4, booted: Datetime("2024-05-01 12:00:00")}`)
	require.NoError(t, err)
	require.Equal(t, []string{"host", "cpu", "booted"}, doc.Names())

	_, err = FromText(`{host: }`)
	require.ErrorIs(t, err, errs.ErrFailedToParse)

	_, err = FromText(`{a: 1, a: 2}`, parser.WithRejectDuplicateNames())
	require.Error(t, err)
}

func TestMustFromText(t *testing.T) {
	require.NotPanics(t, func() { MustFromText(`{}`) })
	require.Panics(t, func() { MustFromText(`{`) })
}

func TestFromJSON(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a": [1, 2], "b": {"c": null}}`))
	require.NoError(t, err)
	require.Equal(t, `{"a": [1, 2], "b": {"c": null}}`, doc.String())
}

func TestFromMap(t *testing.T) {
	doc := FromMap(map[string]any{"z": 1, "a": "x"})
	require.Equal(t, `{"a": "x", "z": 1}`, doc.String())
}

func TestLoadAndNew(t *testing.T) {
	raw := MustFromText(`{a: 1}`).RawData()

	loaded, err := Load(raw)
	require.NoError(t, err)
	require.True(t, loaded.Equal(New(raw)))

	_, err = Load(raw[:len(raw)-1])
	require.ErrorIs(t, err, errs.ErrInvalidDocumentSize)
}

func TestNameID(t *testing.T) {
	require.Equal(t, hash.ID("cpu"), NameID("cpu"))
	require.NotEqual(t, NameID("cpu"), NameID("mem"))
}

func TestTextAndBinaryAgree(t *testing.T) {
	built := NewBuilder().
		AppendInt32("a", 1).
		AppendBool("b", true).
		AppendString("c", "x").
		Done()
	parsed := MustFromText(`{'a': 1, 'b': true, 'c': "x"}`)

	require.True(t, built.Equal(parsed))
	require.Equal(t, built.Fingerprint(), parsed.Fingerprint())
}
