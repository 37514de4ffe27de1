// Package auth establishes and checks the single operator credential.
//
// # Credential model
//
// There is exactly one credential per deployment, stored as a bcrypt hash
// inside the document. Bootstrap sets it once; no operation ever re-sets
// it. Verification compares with bcrypt's constant-time check, and a dummy
// comparison runs when no credential exists so response timing stays flat.
//
// # Session tokens
//
// Verification itself is stateless, but privileged actions need proof of a
// prior successful verify. The Issuer mints short-lived HS256 JWTs for
// that:
//
//	token, err := issuer.Issue(12 * time.Hour)
//	err = issuer.Check(token)
//
// The token requirement on writes is a deliberate hardening over the
// original deployment, which trusted a client-held flag alone.
//
// # Errors
//
//   - ErrEmptyCredential: bootstrap with an empty password
//   - ErrAlreadyBootstrapped: bootstrap after a credential exists
//   - ErrNoCredential: verify before any bootstrap
//   - ErrMismatch: wrong password
//   - ErrInvalidToken, ErrExpiredToken: token check failures
package auth
