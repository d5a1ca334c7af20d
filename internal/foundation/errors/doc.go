// Package errors provides the classified error primitives used across keepsake-site.
//
// A ClassifiedError carries a category, a severity and a retry hint together with
// structured context. The fluent ErrorBuilder creates them, and the HTTP and CLI
// adapters turn them into status codes, JSON payloads and process exit codes.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryContent, "duplicate feature id").
//		WithContext("id", "anchor-2").
//		Build()
package errors
