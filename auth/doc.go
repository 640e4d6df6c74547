// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth implements the owner-key scheme for mutating operations.

Creating a poll or quiz mints a random bearer token (GenerateOwnerToken)
returned once to the creator. Resources store only the HMAC digest of the
token (DigestOwnerToken); requests that close, relaunch or delete present
the token in the X-Owner-Key header, the handler derives the owner id from
it, and VerifyOwner compares that against the stored id in constant time.
*/
package auth
