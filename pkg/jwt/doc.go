// Package jwt implements RS256 access tokens for the Atrium API.
//
// A Service is built from PEM key files. A private key implies its public
// half, so the API server loads both halves while tooling that only signs
// (cmd/admin-token) supplies just the private key:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "keys/private.pem",
//	    PublicKeyPath:  "keys/public.pem",
//	    Issuer:         "atrium.forgo.software",
//	    ExpirationMins: 15,
//	})
//
// Sign stamps the issuer, issued-at, and expiry onto the claims and
// returns a compact three-segment token. Validate checks the signature,
// the time bounds, and the issuer, and surfaces failures as the package
// sentinels (ErrInvalidSignature, ErrTokenExpired, ErrInvalidToken):
//
//	claims, err := svc.Validate(tokenString)
//	if claims.IsAdmin() {
//	    // room management allowed
//	}
//
// GenerateKeyPair writes a fresh RSA key pair to disk for local
// development. Production deployments mount keys from a secret store.
package jwt
