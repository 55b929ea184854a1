package document

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bdoc/errs"
)

func TestValidate_WellFormed(t *testing.T) {
	require.NoError(t, Validate(sampleDocument().RawData()))
	require.NoError(t, Validate(allTypesDocument().RawData()))
	require.NoError(t, Validate([]byte{5, 0, 0, 0, 0}))
	require.NoError(t, Validate([]byte{5, 0, 0, 0, 0, 0xAA, 0xBB}))
}

func TestValidate_Corruptions(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"too short", []byte{5, 0, 0}, errs.ErrDocumentTooShort},
		{"size beyond data", []byte{9, 0, 0, 0, 0}, errs.ErrInvalidDocumentSize},
		{"size below minimum", []byte{3, 0, 0, 0, 0}, errs.ErrInvalidDocumentSize},
		{"negative size", []byte{0xFF, 0xFF, 0xFF, 0xFF, 0}, errs.ErrInvalidDocumentSize},
		{"missing terminator", []byte{5, 0, 0, 0, 1}, errs.ErrMissingTerminator},
		{"early terminator", []byte{8, 0, 0, 0, 0, 0, 0, 0}, errs.ErrInvalidDocumentSize},
		{"unknown type", []byte{8, 0, 0, 0, 0x07, 'a', 0, 0}, errs.ErrUnknownType},
		{"unterminated name", []byte{8, 0, 0, 0, 0x0A, 'a', 'b', 0}, errs.ErrUnterminatedName},
		{"empty name", []byte{7, 0, 0, 0, 0x0A, 0, 0}, errs.ErrEmptyFieldName},
		{"truncated int32", []byte{10, 0, 0, 0, 0x10, 'a', 0, 1, 0, 0}, errs.ErrTruncatedField},
		{"truncated string header", []byte{9, 0, 0, 0, 0x02, 's', 0, 1, 0}, errs.ErrTruncatedField},
		{"zero string length", []byte{12, 0, 0, 0, 0x02, 's', 0, 0, 0, 0, 0, 0}, errs.ErrInvalidStringLength},
		{"string beyond document", []byte{15, 0, 0, 0, 0x02, 's', 0, 100, 0, 0, 0, 'h', 'i', 0, 0}, errs.ErrTruncatedField},
		{"string without NUL", []byte{15, 0, 0, 0, 0x02, 's', 0, 3, 0, 0, 0, 'h', 'i', 'x', 0}, errs.ErrInvalidStringLength},
		{"boolean out of range", []byte{9, 0, 0, 0, 0x08, 'b', 0, 2, 0}, errs.ErrInvalidBoolean},
		{
			"nested missing terminator",
			[]byte{17, 0, 0, 0, 0x03, 'o', 0, 9, 0, 0, 0, 0x08, 'b', 0, 0, 1, 0},
			errs.ErrMissingTerminator,
		},
		{
			"nested size beyond parent",
			[]byte{17, 0, 0, 0, 0x03, 'o', 0, 30, 0, 0, 0, 0x08, 'b', 0, 0, 0, 0},
			errs.ErrTruncatedField,
		},
		{
			"nested size below minimum",
			[]byte{17, 0, 0, 0, 0x03, 'o', 0, 2, 0, 0, 0, 0x08, 'b', 0, 0, 0, 0},
			errs.ErrInvalidDocumentSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.data)
			require.ErrorIs(t, err, tt.want)

			_, err = Load(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func nestedDocument(levels int) Document {
	doc := Empty()
	for range levels {
		doc = NewBuilder().AppendObject("x", doc).Done()
	}

	return doc
}

func TestValidate_NestingDepth(t *testing.T) {
	require.NoError(t, Validate(nestedDocument(MaxNestingDepth).RawData()))
	require.ErrorIs(t, Validate(nestedDocument(MaxNestingDepth+1).RawData()), errs.ErrMaxDepthExceeded)
}
