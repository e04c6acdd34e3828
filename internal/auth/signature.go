package auth

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

var addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// EthVerifier checks personal_sign (EIP-191 version 0x45) signatures.
type EthVerifier struct{}

func NewEthVerifier() *EthVerifier {
	return &EthVerifier{}
}

// Verify reports whether signature was produced over message by the key
// controlling address. Hex digits of the address are compared without
// regard to case, so checksummed and lowercase forms both match.
func (v *EthVerifier) Verify(message, address, signature string) bool {
	if !IsAddress(address) {
		return false
	}
	recovered, err := RecoverAddress(message, signature)
	if err != nil {
		return false
	}
	return strings.EqualFold(recovered, address)
}

// IsAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsAddress(s string) bool {
	return addressRegex.MatchString(s)
}

// RecoverAddress returns the EIP-55 checksummed address of the key that
// produced signature (65 bytes r||s||v, hex) over message.
func RecoverAddress(message, signature string) (string, error) {
	sig, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(signature), "0x"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}
	if len(sig) != 65 {
		return "", fmt.Errorf("%w: want 65 bytes, got %d", ErrMalformedSignature, len(sig))
	}

	recID := sig[64]
	if recID >= 27 {
		recID -= 27
	}
	if recID > 1 {
		return "", fmt.Errorf("%w: bad recovery id %d", ErrMalformedSignature, sig[64])
	}

	// decred compact form: [27+recID] || r || s
	compact := make([]byte, 65)
	compact[0] = 27 + recID
	copy(compact[1:], sig[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, PersonalMessageHash([]byte(message)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	}

	return PublicKeyAddress(pub), nil
}

// PersonalMessageHash is keccak256("\x19Ethereum Signed Message:\n" + len + msg).
func PersonalMessageHash(msg []byte) []byte {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg))
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(prefix))
	h.Write(msg)
	return h.Sum(nil)
}

// PublicKeyAddress derives the checksummed Ethereum address of pub.
func PublicKeyAddress(pub *secp256k1.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	return ChecksumAddress(hex.EncodeToString(h.Sum(nil)[12:]))
}

// ChecksumAddress applies EIP-55 mixed-case encoding to a hex address with or
// without the 0x prefix.
func ChecksumAddress(addr string) string {
	lower := strings.ToLower(strings.TrimPrefix(addr, "0x"))

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	out := []byte(lower)
	for i, c := range out {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			out[i] = c - 32
		}
	}
	return "0x" + string(out)
}
