// Package auth provides pluggable authentication for the precis API.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity found), No (credentials
// invalid), or Abstain (can't handle). A configurable default voter decides
// when all authenticators abstain.
//
// Auth is implemented as HTTP middleware, keeping it decoupled from the
// summarize engine and the stores. The middleware can additionally enforce
// a per-subject request rate limit.
package auth
