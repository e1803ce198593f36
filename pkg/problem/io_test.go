package problem

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/gridaxis/pkg/errors"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"axis.toml", FormatTOML, true},
		{"dir/AXIS.JSON", FormatJSON, true},
		{"axis.yaml", "", false},
		{"axis", "", false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("FormatFromPath(%q) = (%q, %v)", tt.path, got, err)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("FormatFromPath(%q) code = %s", tt.path, errors.GetCode(err))
		}
	}
}

func TestLoadTOML(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "columns.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w := 1.0
	want := &Problem{
		Name:    "columns",
		Spacing: 4,
		Sizes:   []int{50},
		Elements: []Element{
			{Index: 0, Min: ptr(10), Preferred: ptr(40), Weight: &w},
			{Index: 1, Min: ptr(10), Max: ptr(20)},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadJSONDefaultsName(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "relaxed.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p.Name != "relaxed" || p.Count() != 3 || len(p.Ranges) != 2 {
		t.Errorf("Load = %+v", p)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		path string
		code errors.Code
	}{
		{filepath.Join("testdata", "missing.toml"), errors.ErrCodeFileNotFound},
		{filepath.Join("testdata", "typo.toml"), errors.ErrCodeInvalidFormat},
		{filepath.Join("testdata", "columns.yaml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		_, err := Load(tt.path)
		if !errors.Is(err, tt.code) {
			t.Errorf("Load(%s) = %v, want code %s", tt.path, err, tt.code)
		}
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"elements":[{"index":0,"minimum":3}]}`), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode = %v, want INVALID_FORMAT", err)
	}
}

func TestDecodeValidates(t *testing.T) {
	for _, in := range []string{
		`{"elements":[{"index":0,"min":5,"max":1}]}`,
		`{"elements":[{"index":0,"min":2000000000},{"index":1,"min":5}]}`,
		`{"elements":[{"index":0,"min":4611686018427387904},{"index":1,"min":4611686018427387904}],"ranges":[{"first":0,"last":1,"max":10}]}`,
	} {
		if _, err := Decode(strings.NewReader(in), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidProblem) {
			t.Errorf("Decode(%s) = %v, want INVALID_PROBLEM", in, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "columns.toml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range []Format{FormatJSON, FormatTOML} {
		var buf bytes.Buffer
		if err := Encode(&buf, p, f); err != nil {
			t.Fatalf("Encode(%s): %v", f, err)
		}
		back, err := Decode(&buf, f)
		if err != nil {
			t.Fatalf("Decode(%s): %v\n%s", f, err, buf.String())
		}
		if diff := cmp.Diff(p, back); diff != "" {
			t.Errorf("%s round trip mismatch (-want +got):\n%s", f, diff)
		}
	}
}
