// Package reader implements the content-reading strategies used during
// validation: flat binaries, ZIP-based office documents, and bare ZIP
// archives. The Selector dispatches between them by extension with a
// correctness-critical precedence (office before archive).
package reader
