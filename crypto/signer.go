package crypto

import (
	"github.com/btcsuite/btcd/btcec"

	"github.com/dogechain-lab/objectchain/types"
)

// noCopy may be embedded into structs which must not be copied after first
// use. go vet reports copies through its copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Signer is the signing capability of one authority. It is created once at
// startup and shared by pointer.
type Signer struct {
	_ noCopy

	key  *btcec.PrivateKey
	name types.AuthorityName
}

func NewSigner(key *btcec.PrivateKey) *Signer {
	return &Signer{
		key:  key,
		name: PubKeyToAuthorityName(key.PubKey()),
	}
}

// Name is the public identity of the authority
func (s *Signer) Name() types.AuthorityName {
	return s.name
}

func (s *Signer) sign(digest types.Digest) ([]byte, error) {
	return Sign(s.key, digest[:])
}

// SignOrder vouches that the authority locked the inputs of order
func (s *Signer) SignOrder(order *types.Order) (*types.SignedOrder, error) {
	sig, err := s.sign(order.Digest())
	if err != nil {
		return nil, err
	}

	return &types.SignedOrder{
		Order:     order,
		Authority: s.name,
		Signature: sig,
	}, nil
}

// SignEffects vouches for the outcome of executing a certificate
func (s *Signer) SignEffects(effects *types.OrderEffects) (*types.SignedOrderEffects, error) {
	sig, err := s.sign(effects.Digest())
	if err != nil {
		return nil, err
	}

	return &types.SignedOrderEffects{
		Effects:   effects,
		Authority: s.name,
		Signature: sig,
	}, nil
}

// VerifySignedOrder checks an authority signature on an order
func VerifySignedOrder(signed *types.SignedOrder) error {
	digest := signed.Order.Digest()

	return VerifyAuthoritySignature(signed.Authority, digest[:], signed.Signature)
}

// VerifySignedEffects checks an authority signature on effects
func VerifySignedEffects(signed *types.SignedOrderEffects) error {
	digest := signed.Effects.Digest()

	return VerifyAuthoritySignature(signed.Authority, digest[:], signed.Signature)
}
