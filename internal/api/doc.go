// Package api contains the HTTP handlers, request/response models, and
// error mapping for the public JSON API. Handlers decode and validate
// requests, delegate to the service layer, and translate service errors into
// stable status codes and machine-readable error codes. Authentication is
// applied by the middleware subpackage; handlers read the authenticated user
// ID from the request context.
package api
