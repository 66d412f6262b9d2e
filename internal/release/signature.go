package release

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// LoadKeyring reads an ASCII-armored public keyring, such as the release
// team's published keys.
func LoadKeyring(path string) (openpgp.EntityList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	defer f.Close()
	return ReadKeyring(f)
}

// ReadKeyring parses an ASCII-armored public keyring.
func ReadKeyring(r io.Reader) (openpgp.EntityList, error) {
	keyring, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		return nil, fmt.Errorf("reading keyring: %w", err)
	}
	return keyring, nil
}

// VerifyManifest checks a detached binary signature over the manifest text
// and returns the signer's primary identity name.
func VerifyManifest(keyring openpgp.KeyRing, manifest, signature string) (string, error) {
	signer, err := openpgp.CheckDetachedSignature(keyring, strings.NewReader(manifest), strings.NewReader(signature), nil)
	if err != nil {
		return "", err
	}
	if id := signer.PrimaryIdentity(); id != nil && id.Name != "" {
		return id.Name, nil
	}
	return signer.PrimaryKey.KeyIdString(), nil
}
