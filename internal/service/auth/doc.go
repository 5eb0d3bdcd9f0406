// Package auth implements account registration, password verification and
// HS256 access tokens.
//
// CredentialStore owns password hashing and lookup, TokenService signs and
// verifies tokens, and Service combines the two for the HTTP layer.
package auth
