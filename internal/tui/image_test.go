package tui_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/blackwell-systems/optibridge/internal/tui"
)

func TestDetectImageProtocol(t *testing.T) {
	cases := []struct {
		term        string
		termProgram string
		want        tui.ImageProtocol
	}{
		{"xterm-kitty", "", tui.ProtocolKitty},
		{"xterm-256color", "ghostty", tui.ProtocolKitty},
		{"xterm-256color", "iTerm.app", tui.ProtocolITerm2},
		{"xterm-256color", "", tui.ProtocolNone},
	}
	for _, c := range cases {
		t.Setenv("TERM", c.term)
		t.Setenv("TERM_PROGRAM", c.termProgram)
		if got := tui.DetectImageProtocol(); got != c.want {
			t.Errorf("TERM=%q TERM_PROGRAM=%q: protocol = %v, want %v",
				c.term, c.termProgram, got, c.want)
		}
	}
}

func TestRenderInlineBase64_Kitty(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	got := tui.RenderInlineBase64(payload, tui.ProtocolKitty)
	if !strings.HasPrefix(got, "\x1b_Ga=T,f=100,t=f;") {
		t.Errorf("missing kitty header: %q", got)
	}
	if !strings.Contains(got, payload) {
		t.Error("payload must be transmitted as-is")
	}
	if !strings.HasSuffix(got, "\x1b\\") {
		t.Errorf("missing kitty terminator: %q", got)
	}
}

func TestRenderInlineBase64_ITerm2(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	got := tui.RenderInlineBase64(payload, tui.ProtocolITerm2)
	if !strings.HasPrefix(got, "\x1b]1337;File=inline=1") {
		t.Errorf("missing iTerm2 header: %q", got)
	}
	if !strings.HasSuffix(got, "\x07") {
		t.Errorf("missing iTerm2 terminator: %q", got)
	}
}

func TestRenderInlineBase64_NoProtocol(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))
	if got := tui.RenderInlineBase64(payload, tui.ProtocolNone); got != "" {
		t.Errorf("unsupported terminal must render nothing, got %q", got)
	}
}

func TestRenderInlineBase64_RejectsBadPayload(t *testing.T) {
	if got := tui.RenderInlineBase64("not base64!!!", tui.ProtocolKitty); got != "" {
		t.Errorf("invalid payload must render nothing, got %q", got)
	}
	if got := tui.RenderInlineBase64("", tui.ProtocolKitty); got != "" {
		t.Errorf("empty payload must render nothing, got %q", got)
	}
}
