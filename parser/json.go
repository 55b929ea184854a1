package parser

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"

	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/errs"
)

// FromJSON converts plain JSON into a document.
//
// The root must be an object or an array. Numbers follow the same narrowing
// as the text grammar: Int32, then Int64, then Double. Nesting is limited to
// document.MaxNestingDepth.
//
// Parameters:
//   - data: JSON text
//
// Returns:
//   - document.Document: The converted document
//   - error: Any JSON error, marked with errs.ErrFailedToParse
func FromJSON(data []byte) (document.Document, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return document.Document{}, jsonError(errors.Wrap(err, "invalid JSON"))
	}

	b := document.NewBuilder()
	switch dataType {
	case jsonparser.Object:
		err = appendJSONObject(b, value, 0)
	case jsonparser.Array:
		err = appendJSONArray(b, value, 0)
	default:
		return document.Document{}, jsonError(errors.Newf("JSON root must be an object or an array, got %v", dataType))
	}
	if err != nil {
		return document.Document{}, jsonError(err)
	}

	return b.Done(), nil
}

func jsonError(err error) error {
	return errors.Mark(err, errs.ErrFailedToParse)
}

func appendJSONObject(b *document.Builder, data []byte, depth int) error {
	return jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return errors.Wrapf(err, "field name %q", key)
		}
		if name == "" {
			return errors.Wrap(errs.ErrEmptyFieldName, "JSON object")
		}
		if strings.IndexByte(name, 0) >= 0 {
			return errors.Newf("field name %q contains NUL", name)
		}

		return appendJSONValue(b, name, value, dataType, depth)
	})
}

func appendJSONArray(b *document.Builder, data []byte, depth int) error {
	var appendErr error
	i := 0
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if appendErr != nil {
			return
		}
		if err != nil {
			appendErr = err
			return
		}
		appendErr = appendJSONValue(b, strconv.Itoa(i), value, dataType, depth)
		i++
	})
	if appendErr != nil {
		return appendErr
	}

	return err
}

func appendJSONValue(b *document.Builder, name string, value []byte, dataType jsonparser.ValueType, depth int) error {
	switch dataType {
	case jsonparser.Null:
		b.AppendNull(name)

	case jsonparser.Boolean:
		v, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return errors.Wrapf(err, "field %q", name)
		}
		b.AppendBool(name, v)

	case jsonparser.Number:
		return appendJSONNumber(b, name, value)

	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return errors.Wrapf(err, "field %q", name)
		}
		b.AppendString(name, s)

	case jsonparser.Object, jsonparser.Array:
		if depth >= document.MaxNestingDepth {
			return errors.Wrapf(errs.ErrMaxDepthExceeded, "field %q", name)
		}

		sub := document.NewBuilder(document.WithPooledBuffer(true))
		defer sub.Discard()

		var err error
		if dataType == jsonparser.Object {
			err = appendJSONObject(sub, value, depth+1)
		} else {
			err = appendJSONArray(sub, value, depth+1)
		}
		if err != nil {
			return err
		}

		sub.DoneFast()
		if dataType == jsonparser.Object {
			b.AppendObjectBytes(name, sub.Bytes())
		} else {
			b.AppendArrayBytes(name, sub.Bytes())
		}

	default:
		return errors.Newf("field %q: unsupported JSON value %q", name, value)
	}

	return nil
}

func appendJSONNumber(b *document.Builder, name string, value []byte) error {
	if !bytes.ContainsAny(value, ".eE") {
		// Integers too large for int64 fall through to Double.
		if v, err := jsonparser.ParseInt(value); err == nil {
			if v >= math.MinInt32 && v <= math.MaxInt32 {
				b.AppendInt32(name, int32(v))
			} else {
				b.AppendInt64(name, v)
			}

			return nil
		}
	}

	v, err := jsonparser.ParseFloat(value)
	if err != nil {
		return errors.Wrapf(err, "field %q", name)
	}
	b.AppendDouble(name, v)

	return nil
}
