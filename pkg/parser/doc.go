// Package parser implements the hierarchical parse-state machine that
// drives an RTF token stream: it maintains the formatting state stack,
// consults the stylesheet and color table side tables, and emits semantic
// events to a client (normally a dom.Builder).
package parser
