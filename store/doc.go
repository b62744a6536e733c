// Package store implements durable persistence of the credential snapshot:
// the (user, access token, refresh token) triple written on every successful
// login, registration, or renewal and read exactly once at client startup.
//
// Every implementation keeps the three entries independent on the wire but
// guarantees that Load never returns a partial snapshot: unless all three
// entries are present and the user entry deserializes, the snapshot is
// reported absent. Corrupt data is absence, never an error.
package store
