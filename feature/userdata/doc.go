// Package userdata persists the calculator's settings as a single JSON document.
//
// The document lives in torch_calculator_data.json beside the executable. Each save
// is a shallow merge: top-level keys in the request replace the stored values and
// all other keys are kept. Nested objects are replaced wholesale.
//
// # Components
//
//   - Store: reads and rewrites the JSON file, returning typed *Error values.
//   - Service: saves through the Store and copies the result to an optional Mirror.
//   - BucketMirror: uploads each saved document to an S3-compatible bucket.
//   - Handler: exposes the HTTP endpoints.
//
// # Failure reasons
//
//   - InvalidFormat: the request body is not a JSON object (HTTP 400).
//   - IOError: the data file could not be read or written (HTTP 500).
//   - ParseError: the data file on disk is malformed; only Load reports it,
//     Save silently starts from an empty document (HTTP 500).
//
// # HTTP Endpoints
//
//   - POST /api/save-data : Merge a JSON object into the stored document.
//   - GET /api/load-data : Return the stored document.
package userdata
