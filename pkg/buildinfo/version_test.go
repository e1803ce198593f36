package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v9.9.9"

	tmpl := Template()
	if !strings.HasPrefix(tmpl, "{{.Name}} v9.9.9 ") {
		t.Errorf("Template() = %q", tmpl)
	}
	if got := Current().Version; got != "v9.9.9" {
		t.Errorf("Current().Version = %q", got)
	}
}
