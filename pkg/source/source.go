package source

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dadav/go-jsonpointer"
	"github.com/hashicorp/go-multierror"
	"github.com/klauspost/compress/gzip"
	"sigs.k8s.io/yaml"

	"github.com/MacroPower/attrkit/pkg/element"
)

// DefaultMaxSize is the largest decompressed document [ReadFile] accepts.
const DefaultMaxSize int64 = 64 << 20

var (
	ErrFailedFileRead = errors.New("failed to read file")
	ErrTooLarge       = errors.New("document too large")
	ErrPointer        = errors.New("failed to resolve JSON pointer")
)

var gzipMagic = []byte{0x1f, 0x8b}

// ReadFile reads the file at path, transparently decompressing gzip input.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedFileRead, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close file",
				slog.String("path", path),
				slog.Any("err", err),
			)
		}
	}()

	data, err := Read(f, DefaultMaxSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return data, nil
}

// Read reads r, decompressing it when it starts with the gzip magic number.
// A maxSize of zero disables the size limit.
func Read(r io.Reader, maxSize int64) ([]byte, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br

	head, err := br.Peek(len(gzipMagic))
	if err == nil && bytes.Equal(head, gzipMagic) {
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedFileRead, err)
		}
		defer func() {
			if err := gzr.Close(); err != nil {
				slog.Error("failed to close gzip reader", slog.Any("err", err))
			}
		}()

		src = gzr
	}

	if maxSize > 0 {
		src = io.LimitReader(src, maxSize+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedFileRead, err)
	}

	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, maxSize)
	}

	return data, nil
}

// Select returns the JSON encoding of the value at pointer within the JSON or
// YAML document data. An empty pointer selects the whole document.
func Select(data []byte, pointer string) ([]byte, error) {
	js, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", element.ErrInvalidElement, err)
	}

	if pointer == "" {
		return js, nil
	}

	var merr error

	var obj any
	if err := json.Unmarshal(js, &obj); err != nil {
		merr = multierror.Append(merr, err)
	}

	res, err := jsonpointer.Get(obj, pointer)
	if err != nil {
		merr = multierror.Append(merr, err)
	}

	if merr != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrPointer, pointer, merr)
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %w", ErrPointer, pointer, err)
	}

	return out, nil
}

// LoadElement reads a single element from path, optionally selected by a JSON
// pointer. It returns a nil element, and no error, when the selected
// document is empty or null.
func LoadElement(path, pointer string) (*element.Element, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return DecodeElement(data, pointer)
}

// DecodeElement decodes a single element from data, optionally selected by a
// JSON pointer.
func DecodeElement(data []byte, pointer string) (*element.Element, error) {
	js, err := Select(data, pointer)
	if err != nil {
		return nil, err
	}

	e, err := element.ParseJSON(js)
	if err != nil {
		return nil, fmt.Errorf("decode element: %w", err)
	}

	return e, nil
}

// DecodeElements decodes data holding either a single element or a list of
// elements. Null entries are skipped.
func DecodeElements(data []byte) ([]*element.Element, error) {
	js, err := Select(data, "")
	if err != nil {
		return nil, err
	}

	js = bytes.TrimSpace(js)
	if len(js) == 0 || js[0] != '[' {
		e, err := element.ParseJSON(js)
		if err != nil {
			return nil, fmt.Errorf("decode element: %w", err)
		}

		if e == nil {
			return nil, nil
		}

		return []*element.Element{e}, nil
	}

	var list []*element.Element
	if err := json.Unmarshal(js, &list); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}

	out := make([]*element.Element, 0, len(list))
	for _, e := range list {
		if e != nil {
			out = append(out, e)
		}
	}

	return out, nil
}
