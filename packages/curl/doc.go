// Package curl parses curl-style command lines into structured HTTP
// request descriptors.
//
// Parsing happens in two stages: Tokenize splits the raw command into
// shell-like words (quoted spans kept intact), and Parse walks the tokens
// applying curl flag semantics to build a RequestDescriptor. Only the flags
// an inspection tool needs are interpreted; every other flag is a no-op.
package curl
