// Package validator ties the signature store and the content-reading
// strategies together: it checks that a file's actual bytes match any of
// the patterns registered for its extension, then runs the format's
// structural check on the first match. It also computes streaming content
// digests for integrity fingerprinting.
package validator
