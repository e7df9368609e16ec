package crypto

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/btcsuite/btcd/btcec"

	"github.com/dogechain-lab/objectchain/helper/keccak"
	"github.com/dogechain-lab/objectchain/types"
)

const privateKeyLength = 32

var (
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPublicKey  = errors.New("invalid public key")
	errInvalidSignature  = errors.New("invalid signature length")
)

// S256 is the secp256k1 elliptic curve
var S256 = btcec.S256()

// GenerateKey generates a new secp256k1 private key
func GenerateKey() (*btcec.PrivateKey, error) {
	return btcec.NewPrivateKey(S256)
}

// ParsePrivateKey parses a raw 32 byte secp256k1 private key
func ParsePrivateKey(buf []byte) (*btcec.PrivateKey, error) {
	if len(buf) != privateKeyLength {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPrivateKey, len(buf))
	}

	priv, _ := btcec.PrivKeyFromBytes(S256, buf)

	return priv, nil
}

// MarshalPrivateKey serializes the private key as 32 bytes
func MarshalPrivateKey(priv *btcec.PrivateKey) []byte {
	return priv.Serialize()
}

// GenerateAndEncodePrivateKey returns a new key and its hex encoding
func GenerateAndEncodePrivateKey() (*btcec.PrivateKey, []byte, error) {
	priv, err := GenerateKey()
	if err != nil {
		return nil, nil, err
	}

	return priv, []byte(hex.EncodeToString(MarshalPrivateKey(priv))), nil
}

// BytesToPrivateKey decodes a hex encoded private key
func BytesToPrivateKey(input []byte) (*btcec.PrivateKey, error) {
	buf, err := hex.DecodeString(strings.TrimSpace(string(input)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}

	return ParsePrivateKey(buf)
}

// ReadPrivateKeyFile reads a hex encoded private key from disk
func ReadPrivateKeyFile(path string) (*btcec.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return BytesToPrivateKey(raw)
}

// PubKeyToAddress derives the account address of a public key
func PubKeyToAddress(pub *btcec.PublicKey) types.Address {
	buf := keccak.Keccak256(nil, pub.SerializeUncompressed()[1:])

	return types.BytesToAddress(buf[12:])
}

// PubKeyToAuthorityName returns the compressed public key as authority name
func PubKeyToAuthorityName(pub *btcec.PublicKey) types.AuthorityName {
	var name types.AuthorityName

	copy(name[:], pub.SerializeCompressed())

	return name
}

// ParseAuthorityName decodes the public key of an authority
func ParseAuthorityName(name types.AuthorityName) (*btcec.PublicKey, error) {
	pub, err := btcec.ParsePubKey(name[:], S256)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	return pub, nil
}

// Sign produces a 65 byte recoverable signature of hash
func Sign(priv *btcec.PrivateKey, hash []byte) ([]byte, error) {
	return btcec.SignCompact(S256, priv, hash, true)
}

// RecoverPubKey returns the public key that produced sig over hash
func RecoverPubKey(hash, sig []byte) (*btcec.PublicKey, error) {
	if len(sig) != types.SignatureLength {
		return nil, errInvalidSignature
	}

	pub, _, err := btcec.RecoverCompact(S256, sig, hash)
	if err != nil {
		return nil, err
	}

	return pub, nil
}

// RecoverAddress returns the account that produced sig over hash
func RecoverAddress(hash, sig []byte) (types.Address, error) {
	pub, err := RecoverPubKey(hash, sig)
	if err != nil {
		return types.ZeroAddress, err
	}

	return PubKeyToAddress(pub), nil
}

// VerifyOrder checks that the order is signed by its sender
func VerifyOrder(order *types.Order) error {
	digest := order.Digest()

	sender, err := RecoverAddress(digest[:], order.Signature)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidSignature, err)
	}

	if sender != order.Sender() {
		return fmt.Errorf("%w: signed by %s, sender %s", types.ErrInvalidSignature, sender, order.Sender())
	}

	return nil
}

// VerifyAuthoritySignature checks that sig over hash was produced by the named authority
func VerifyAuthoritySignature(name types.AuthorityName, hash, sig []byte) error {
	pub, err := RecoverPubKey(hash, sig)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidSignature, err)
	}

	if PubKeyToAuthorityName(pub) != name {
		return fmt.Errorf("%w: not signed by %s", types.ErrInvalidSignature, name)
	}

	return nil
}

// SignOrder builds a client order signed by priv. The sender is derived from the key.
func SignOrder(priv *btcec.PrivateKey, data types.OrderData) (*types.Order, error) {
	data.Sender = PubKeyToAddress(priv.PubKey())

	order := &types.Order{Data: data}
	digest := order.Digest()

	sig, err := Sign(priv, digest[:])
	if err != nil {
		return nil, err
	}

	order.Signature = sig

	return order, nil
}
