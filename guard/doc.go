/*
Package guard authenticates callers and authorizes them onto routes.

A [Guard] composes four parts:

  - a [Cipher] sealing session payloads into opaque tokens
  - a [SessionStore] issuing, rotating and decoding those tokens
  - an [Authenticator] verifying a [Credential] into an [Identity]
  - an [Authorizer] holding the roles each route declaration allows

Sessions are stateless. A token is the encryption of the identity and the time it was issued,
so nothing is stored server-side and nothing can be revoked before [SessionTTL] runs out.

The default AES-CBC methods only encrypt. Configure [MethodSealed]
to also authenticate tokens against tampering.
*/
package guard
