// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - RayID: Generates a unique Request ID (RayID) for every incoming request,
//     injecting it into the context and response headers for tracing.
//
// The application is bound to loopback and has no authentication layer.
package middleware
