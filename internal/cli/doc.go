// Package cli implements the sigguard command tree: scan, scan-dir,
// list, status, add, import and export. Commands write results to
// stdout in text or JSON form and reserve stderr for diagnostics; exit
// codes distinguish valid (0), invalid (1) and command errors (2).
package cli
