package pretty_test

import (
	"bytes"
	"testing"

	"github.com/yaklabco/lc3kit/internal/ui/pretty"
)

func TestNewStyles(t *testing.T) {
	t.Parallel()

	if pretty.NewStyles(true) == nil {
		t.Fatal("NewStyles(true) returned nil")
	}
	if pretty.NewStyles(false) == nil {
		t.Fatal("NewStyles(false) returned nil")
	}
}

func TestNoColorStylesRenderPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	if got := styles.Error.Render("error"); got != "error" {
		t.Errorf("no-color render = %q, want plain text", got)
	}
	if got := styles.DiffAdd.Render("+line"); got != "+line" {
		t.Errorf("no-color render = %q, want plain text", got)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if !pretty.IsColorEnabled("always", &buf) {
		t.Error("always mode disabled color")
	}
	if pretty.IsColorEnabled("never", &buf) {
		t.Error("never mode enabled color")
	}
	// A plain buffer is not a terminal.
	if pretty.IsColorEnabled("auto", &buf) {
		t.Error("auto mode enabled color for a non-terminal writer")
	}
}
