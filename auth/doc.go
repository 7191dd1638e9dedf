// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides account credentials and session token utilities.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)  // ErrInvalidCredentials on mismatch

# Session Tokens

Sessions are HS256 JWTs signed with the server's token secret. The claims
carry the user id (subject), email, name, and role so handlers can authorize
without a user lookup:

	token, err := auth.GenerateSessionToken(user, cfg.TokenSecret, time.Now())
	sess, err := auth.ParseSessionToken(token, cfg.TokenSecret)
	if sess.IsAdmin() { ... }

Tokens expire after SessionTTL (24h). Expired, malformed, or foreign-signed
tokens all fail with ErrInvalidToken; callers map that to 401.

# ID Generation

Random UUIDs for database records:

	id := auth.NewID()
*/
package auth
