package problem

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridaxis/pkg/errors"
)

// Format is a problem file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported problem file %q (want .toml or .json)", filepath.Base(path))
	}
}

// Load reads and validates the problem at path.
func Load(path string) (*Problem, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "problem file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Decode reads a problem in the given format and validates it. Unknown keys
// are rejected so that typos such as "maximum" do not go unnoticed.
func Decode(r io.Reader, format Format) (*Problem, error) {
	var p Problem
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode writes v in the given format. JSON output is indented.
func Encode(w io.Writer, v any, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
}
