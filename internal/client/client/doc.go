// Package client talks to the Yukta HTTP API on behalf of the CLI.
//
// HTTPClient keeps the session cookie in a cookie jar, so after SignUp or
// SignIn the gated calls (Register, MyRegistrations) are authenticated
// automatically. Transport failures wrap ErrUnavailable; non-2xx answers are
// returned as *APIError, which matches ErrUnauthorized or ErrConflict with
// errors.Is where the status code calls for it.
package client
