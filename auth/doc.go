// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and role-based
capability checks.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, attempt) // ErrInvalidCredentials on mismatch

# Sessions

SessionManager issues HS256 JWTs carrying the user ID and username:

	sessions := auth.NewSessionManager(secret, 24*time.Hour)
	token, expiresAt, err := sessions.Issue(user.ID, user.Username)
	claims, err := sessions.Parse(token) // ErrInvalidToken when bad or expired

Tokens are sent in the "session" cookie or an "Authorization: Bearer" header.

# Capabilities

Authorizer wraps a Casbin enforcer loaded from the embedded model.conf and
policy.csv. Users map to the "staff" or "member" role:

	ok, err := authorizer.Can(user, auth.ObjectPoll, auth.ActionCreate)

Staff may create, toggle and manage polls; every role may cast votes.
*/
package auth
