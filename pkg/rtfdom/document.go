// Package rtfdom is the thin entry point that loads an RTF byte stream,
// in full, from a file or a string, and drives it through pkg/parser and
// pkg/dom to produce a document tree. It is deliberately thin: the
// engine lives in parser and dom, this is just where a caller starts.
package rtfdom

import (
	"log/slog"
	"os"
	"time"

	"github.com/dimelords/rtfdom/pkg/common"
	"github.com/dimelords/rtfdom/pkg/dom"
	"github.com/dimelords/rtfdom/pkg/parser"
)

// Document wraps a parsed RTF body's DOM tree plus the side tables the
// parser built up while producing it.
type Document struct {
	builder *dom.Builder
	parser  *parser.Parser
	logger  *slog.Logger
}

// Root returns the document's root `rtf` node. Mutating it breaks the
// builder's invariants; take a Tree snapshot instead if you need to edit.
func (d *Document) Root() *dom.Node { return d.builder.Root() }

// Tree returns a deep copy of the document's tree, independent of
// whatever produced it.
func (d *Document) Tree() *dom.Node { return d.builder.Tree() }

// RegisterFieldDriver registers an additional or overriding field driver
// before parsing. Call it on the Document returned by New, before Parse.
func (d *Document) RegisterFieldDriver(name string, driver dom.FieldDriver) {
	d.builder.RegisterFieldDriver(name, driver)
}

// Parse runs the parser to completion, growing Root() as it goes.
func (d *Document) Parse() error {
	if err := d.parser.Parse(); err != nil {
		return err
	}
	d.logger.Info("parsed RTF document", "nodes", countNodes(d.builder.Root()))
	return nil
}

func countNodes(n *dom.Node) int {
	total := 1
	for _, c := range n.Children {
		total += countNodes(c)
	}
	return total
}

// buildState is the construction-time context an Option can mutate: the
// parser configuration plus the builder, so an Option can register field
// drivers as easily as it can set the clock.
type buildState struct {
	cfg         *parser.Config
	builder     *dom.Builder
	driverNames []string
}

// Option configures a Document at construction time.
type Option func(*buildState)

// WithClock injects the clock consulted by \chdate, \chdpl, \chdpa and
// \chtime, so tests can pin those controls to a deterministic instant
// instead of the wall clock.
func WithClock(clock func() time.Time) Option {
	return func(bs *buildState) { bs.cfg.Clock = clock }
}

// WithLogger injects the logger the parser reports tolerated recovery
// conditions to (see pkg/parser.Config.Logger) and that Parse uses to
// record a completion summary. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(bs *buildState) { bs.cfg.Logger = logger }
}

// WithFieldDriver registers an additional or overriding field driver
// before parsing, equivalent to calling Document.RegisterFieldDriver
// before Parse but composable with the other options passed to New.
func WithFieldDriver(name string, driver dom.FieldDriver) Option {
	return func(bs *buildState) {
		bs.builder.RegisterFieldDriver(name, driver)
		bs.driverNames = append(bs.driverNames, name)
	}
}

// New constructs a Document over an already-loaded RTF byte buffer
// without parsing it yet, so callers can register field drivers first.
func New(buf []byte, opts ...Option) (*Document, error) {
	builder := dom.NewBuilder()
	cfg := parser.Config{Callbacks: builder.Callbacks()}
	bs := &buildState{cfg: &cfg, builder: builder}
	for _, opt := range opts {
		opt(bs)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("loaded RTF buffer", "bytes", len(buf), "fieldDrivers", bs.driverNames)
	p, err := parser.New(buf, cfg)
	if err != nil {
		return nil, err
	}
	return &Document{builder: builder, parser: p, logger: logger}, nil
}

// ParseString loads and fully parses an RTF document held in memory as a
// string. The outermost content should be enclosed in `{ ... }`, though a
// bare body is tolerated by the parser's implicit root frame.
func ParseString(rtf string, opts ...Option) (*dom.Node, error) {
	doc, err := New([]byte(rtf), opts...)
	if err != nil {
		return nil, err
	}
	if err := doc.Parse(); err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

// ParseFile loads an entire RTF file into memory and parses it. No
// incremental I/O happens once parsing starts; the whole buffer is read
// up front per the engine's synchronous, no-I/O-mid-parse resource model.
func ParseFile(path string, opts ...Option) (*dom.Node, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapErrorWithPath("rtfdom", "open", path, err)
	}
	return ParseString(string(buf), opts...)
}
