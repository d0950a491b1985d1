// Package storage provides the S3-compatible client used to back up user data.
//
// Backups are optional and disabled by default; the local JSON file is always the
// source of truth. When enabled, the userdata feature mirrors every saved document
// to the configured bucket through the Client interface defined here.
//
// # Client
//
// Client wraps the subset of the MinIO SDK the application needs, which keeps it
// mockable in tests (see the mocks subpackage).
//
// # Configuration
//
// Config carries the endpoint, credentials, bucket and object key. Endpoints may
// be given with or without an http(s) scheme.
package storage
