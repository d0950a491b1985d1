// Package static serves the calculator's single-page application.
//
// # HTTP Endpoints
//
//   - GET / : The entry document (index.html).
//   - GET /页签/* : Files below the 页签 directory.
//   - GET /* : Any other file below the application root.
//
// Unknown files answer 404. Path handling is left to Fiber's file server;
// the server only listens on loopback.
package static
