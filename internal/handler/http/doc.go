// Package http implements the HTTP transport layer of the application.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Cross-cutting concerns such as authentication, request tracing, and
// access logging are handled in this package before requests are delegated
// to the service layer. Handlers never contain business rules: they decode
// requests, resolve the caller's identity from the request context, call one
// service method, and map the result (or error) onto an HTTP response.
package http
