// Package common provides the unified error type shared across all rtfdom
// packages.
//
// token, state, parser, rtfdom and export report failures through
// common.Error so callers can use errors.Is / errors.As uniformly regardless
// of which layer raised it.
package common
