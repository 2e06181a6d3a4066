// Package qr renders short strings as scannable terminal graphics. The
// actual encoding is delegated to qrterminal; this package only narrows
// it to an interface the CLI can fake in tests.
package qr

import (
	"io"

	qrterminal "github.com/mdp/qrterminal/v3"
	"rsc.io/qr"
)

// Renderer encodes text into a terminal-displayable code.
type Renderer interface {
	// Render writes the code for text to w. Input is never mutated.
	Render(w io.Writer, text string) error
}

// TerminalRenderer draws half-block QR codes suited to dark and light
// terminals alike.
type TerminalRenderer struct {
	Level qr.Level
}

// NewTerminalRenderer maps a settings level name to a renderer.
// Unknown names get medium correction.
func NewTerminalRenderer(level string) *TerminalRenderer {
	l := qr.M
	switch level {
	case "low":
		l = qr.L
	case "high":
		l = qr.H
	}
	return &TerminalRenderer{Level: l}
}

func (r *TerminalRenderer) Render(w io.Writer, text string) error {
	qrterminal.GenerateWithConfig(text, qrterminal.Config{
		Level:          r.Level,
		Writer:         w,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		QuietZone:      2,
	})
	return nil
}
