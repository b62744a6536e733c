// Package token inspects access tokens on the client side.
//
// The client never verifies signatures — it does not hold the server's key
// and treats the server as the authority on token validity. Inspection only
// reads the registered claims of a JWT-shaped token so the client can renew
// shortly before expiry instead of always eating an unauthorized response.
// Opaque (non-JWT) tokens inspect as unknown expiry and fall back to lazy,
// 401-driven renewal.
package token
