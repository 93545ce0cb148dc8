package tui

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// ImageProtocol represents the inline-image protocol supported by the
// terminal.
type ImageProtocol int

// Terminal image protocol types
const (
	// ProtocolNone indicates no image protocol support
	ProtocolNone ImageProtocol = iota
	// ProtocolKitty indicates Kitty terminal graphics protocol
	ProtocolKitty
	// ProtocolITerm2 indicates iTerm2 inline images protocol
	ProtocolITerm2
)

// DetectImageProtocol detects which terminal image protocol is supported.
func DetectImageProtocol() ImageProtocol {
	termProgram := os.Getenv("TERM_PROGRAM")
	term := os.Getenv("TERM")

	// Check for Kitty terminal
	if strings.Contains(term, "kitty") {
		return ProtocolKitty
	}

	// Check for Ghostty (supports Kitty protocol)
	if termProgram == "ghostty" {
		return ProtocolKitty
	}

	// Check for iTerm2
	if termProgram == "iTerm.app" {
		return ProtocolITerm2
	}

	return ProtocolNone
}

// RenderInlineBase64 renders an already base64-encoded image, the form
// the daemon sends previews and thumbnails in, using the terminal's
// protocol. Returns the escape sequences to display the image, or ""
// when the protocol is unsupported or the payload is not valid base64.
func RenderInlineBase64(encoded string, protocol ImageProtocol) string {
	if protocol == ProtocolNone || encoded == "" {
		return ""
	}
	if _, err := base64.StdEncoding.DecodeString(encoded); err != nil {
		return ""
	}

	switch protocol {
	case ProtocolKitty:
		// Kitty protocol:
		// - a=T: transmit image
		// - f=100: format is png/jpeg (100)
		// - t=f: data is transmitted inline
		return fmt.Sprintf("\x1b_Ga=T,f=100,t=f;%s\x1b\\", encoded)
	case ProtocolITerm2:
		// iTerm2 inline images: \x1b]1337;File=inline=1:<base64>\x07
		return fmt.Sprintf("\x1b]1337;File=inline=1;width=30px:%s\x07", encoded)
	}

	return ""
}
