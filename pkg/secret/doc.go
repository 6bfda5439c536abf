// Package secret cleans and validates Base32 shared secrets before any
// one-time code is derived from them.
//
// Authenticator apps, QR scanners and humans all produce secrets in slightly
// different shapes: lower case, grouped with spaces or dashes, with or
// without padding. Normalize folds all of these into canonical RFC 4648
// Base32 text.
//
// # Usage
//
//	import "github.com/dmitrymomot/otpkit/pkg/secret"
//
//	s, ok := secret.Normalize("jbswy 3dp-ehpk3pxp")
//	if !ok {
//	    // route to the fallback generator, never to the backend
//	}
//	fmt.Println(s) // JBSWY3DPEHPK3PXP
//
// Normalize is pure and cheap. Callers normalize on every generation instead
// of caching the result, because the stored secret may be edited at any time.
//
// New secrets for enrollment are created with Generate.
package secret
