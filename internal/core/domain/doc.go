// Package domain defines the core business entities for docverify.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types of the verification workflow:
//
//   - DocumentJob: A server-side extraction job and its status
//   - ExtractedData: The field name to FieldData mapping produced by extraction
//   - VerifiedRecord: The server's response to a saved correction
//   - Credentials: The bearer token issued at sign-in
//   - Failure: A classified failure of a remote operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, pure helpers without I/O (natural ordering)
//   - Cannot Import: Any internal/ package
package domain
