// Package errors provides the classified error primitives used across siteimport.
//
// Errors carry a category, a severity and structured context so that the
// importer can tell per-record failures (validation, remote fetch,
// filesystem) apart from run-level failures (configuration, provider) and
// the CLI can map them to exit codes.
//
// Example usage:
//
//	err := errors.RemoteFetchError("requested resource responded with a code: 404").
//		WithContext("url", url).
//		WithContext("status", 404).
//		Build()
package errors
