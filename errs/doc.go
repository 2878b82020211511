// Package errs provides the operation-tagged error type used throughout
// tracelog. Errors record which operation failed (errs.Op), a message, and
// an optional cause, so log enrichment can reconstruct the full failure
// chain from outermost wrapper down to root cause.
package errs
