package markup

import (
	"io"
	"log/slog"
	"sync"
)

// Engine parses markup into a Node tree and renders it back. The zero value
// is ready to use: mode starts unset (auto-detect) and the tree starts
// empty.
type Engine struct {
	// Logger receives Debug-level events for stray end tags and for XML
	// auto-detect. A runaway "<" is folded into text without a log event.
	// Nil uses a package default that discards output.
	Logger *slog.Logger

	mode Mode
	tree *Node

	initOnce    sync.Once
	fallbackLog *slog.Logger
}

func (e *Engine) log() *slog.Logger {
	e.initOnce.Do(func() {
		e.fallbackLog = slog.New(slog.NewTextHandler(io.Discard, nil))
	})
	if e.Logger != nil {
		return e.Logger
	}
	return e.fallbackLog
}

// Parse tokenizes and builds a tree from source, replacing the engine's
// current tree, and returns the engine to allow chaining.
func (e *Engine) Parse(source string) *Engine {
	b := newBuilder(e.mode, e.log())
	tok := newTokenizer(source, &b.mode)
	e.tree = b.build(tok)
	e.mode = b.mode
	return e
}

// Render serializes the current tree. An engine with no parsed tree yet
// renders as an empty string.
func (e *Engine) Render() string {
	if e.tree == nil {
		return ""
	}
	return Render(e.tree, e.effectiveMode())
}

// Tree returns the current tree, or nil if Parse has not been called (and
// SetTree has not been used to install one).
func (e *Engine) Tree() *Node {
	return e.tree
}

// SetTree replaces the engine's tree directly, bypassing Parse.
func (e *Engine) SetTree(n *Node) {
	e.tree = n
}

// XML reports the mode flag: nil means unset (auto-detect on next Parse),
// otherwise true for XML mode and false for HTML mode.
func (e *Engine) XML() *bool {
	switch e.mode {
	case XMLMode:
		v := true
		return &v
	case HTMLMode:
		v := false
		return &v
	default:
		return nil
	}
}

// SetXML sets the mode flag explicitly. Passing nil resets it to unset
// (auto-detect); once set explicitly, auto-detection is skipped on
// subsequent parses.
func (e *Engine) SetXML(xml *bool) {
	switch {
	case xml == nil:
		e.mode = AutoMode
	case *xml:
		e.mode = XMLMode
	default:
		e.mode = HTMLMode
	}
}

// effectiveMode is what Render uses to decide self-closing/void syntax:
// AutoMode (never explicitly latched, e.g. an empty document) renders with
// HTML rules.
func (e *Engine) effectiveMode() Mode {
	if e.mode == XMLMode {
		return XMLMode
	}
	return HTMLMode
}
