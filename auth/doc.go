// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin keys, record IDs and IP hashing.

# Admin Keys

Admin keys are HMAC-SHA256 of the election ID under a server salt:

	adminKey := auth.GenerateAdminKey(electionID, salt)
	err := auth.ValidateAdminKey(electionID, adminKey, salt)

Keys are unpadded URL-safe base64. Because they are derived, nothing about
them is stored; rotating the salt invalidates every outstanding key.

# ID Generation

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of an HMAC. Ballots keep only
this value.
*/
package auth
