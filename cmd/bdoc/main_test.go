package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/errs"
)

func execute(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestEncodeDecode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.txt")
	bin := filepath.Join(dir, "doc.bdoc")
	require.NoError(t, os.WriteFile(src, []byte(`{name: "bdoc", n: 1, at: Datetime(1000000)}`), 0o600))

	_, err := execute(t, nil, "encode", "-o", bin, src)
	require.NoError(t, err)

	data, err := os.ReadFile(bin)
	require.NoError(t, err)
	doc, err := document.Load(data)
	require.NoError(t, err)
	require.Equal(t, 3, doc.NumFields())

	out, err := execute(t, nil, "decode", bin)
	require.NoError(t, err)
	require.Equal(t, `{"name": "bdoc", "n": 1, "at": Datetime(1000000)}`+"\n", out)

	out, err = execute(t, nil, "decode", "--dump", bin)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "document ("))
}

func TestEncode_StdinToStdout(t *testing.T) {
	out, err := execute(t, []byte(`{"a": [1, 2]}`), "encode", "--json")
	require.NoError(t, err)

	doc, err := document.Load([]byte(out))
	require.NoError(t, err)
	require.Equal(t, `{"a": [1, 2]}`, doc.String())
}

func TestEncode_ParseError(t *testing.T) {
	_, err := execute(t, []byte(`{a: 1`), "encode")
	require.ErrorIs(t, err, errs.ErrFailedToParse)

	_, err = execute(t, []byte(`{a: 1, a: 2}`), "encode", "--reject-duplicates")
	require.Error(t, err)
}

func TestDecode_RejectsCorruptInput(t *testing.T) {
	_, err := execute(t, []byte{9, 0, 0, 0, 0}, "decode")
	require.ErrorIs(t, err, errs.ErrInvalidDocumentSize)
}

func TestInspect(t *testing.T) {
	doc := document.NewBuilder().
		AppendString("name", "bdoc").
		AppendDatetime("at", 1_000_000).
		AppendObject("meta", document.FromMap(map[string]any{"k": true})).
		AppendArray("list", document.FromSlice([]any{1, 2, 3})).
		AppendInt64("big", 1<<40).
		Done()

	out, err := execute(t, doc.RawData(), "inspect")
	require.NoError(t, err)
	require.Contains(t, out, "fields: 5")
	require.Contains(t, out, `"bdoc"`)
	require.Contains(t, out, "1970-01-01 00:00:01")
	require.Contains(t, out, "object with 1 fields")
	require.Contains(t, out, "array with 3 elements")
	require.Contains(t, out, "NumberLong(1099511627776)")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, nil, "--log-level", "loud", "inspect")
	require.Error(t, err)
}
