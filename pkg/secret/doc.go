// Package secret generates shared secrets for one-time passcodes.
//
// A secret is 16 characters drawn uniformly from the Base32 alphabet, which
// decodes to 10 bytes (80 bits) of key material. The package-level Generate
// uses a single process-wide Generator backed by crypto/rand that is created
// on first use; NewGenerator accepts any io.Reader for tests or HSM-backed
// sources.
//
//	s, err := secret.Generate()
//	if err != nil {
//	    return err
//	}
package secret
