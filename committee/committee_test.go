package committee

import (
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/assert"

	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/types"
)

func newTestCommittee(t *testing.T, n int) (*Committee, []*crypto.Signer) {
	t.Helper()

	signers := make([]*crypto.Signer, n)
	rights := make(map[types.AuthorityName]uint64, n)

	for i := range signers {
		key, err := crypto.GenerateKey()
		assert.NoError(t, err)

		signers[i] = crypto.NewSigner(key)
		rights[signers[i].Name()] = 1
	}

	return NewCommittee(rights), signers
}

func testOrder(t *testing.T) *types.Order {
	t.Helper()

	key, err := crypto.GenerateKey()
	assert.NoError(t, err)

	order, err := crypto.SignOrder(key, types.OrderData{
		Kind: &types.Transfer{Recipient: types.StringToAddress("0xb0b")},
		Gas:  types.ObjectRef{ObjectID: types.StringToObjectID("0x1")},
	})
	assert.NoError(t, err)

	return order
}

func certify(t *testing.T, order *types.Order, signers ...*crypto.Signer) *types.CertifiedOrder {
	t.Helper()

	cert := &types.CertifiedOrder{Order: order}

	for _, s := range signers {
		signed, err := s.SignOrder(order)
		assert.NoError(t, err)

		cert.Signatures = append(cert.Signatures, types.AuthoritySignature{
			Authority: signed.Authority,
			Signature: signed.Signature,
		})
	}

	return cert
}

func TestQuorumThreshold(t *testing.T) {
	t.Parallel()

	c, _ := newTestCommittee(t, 4)

	assert.Equal(t, uint64(4), c.TotalVotes())
	assert.Equal(t, uint64(3), c.QuorumThreshold())
	assert.Equal(t, uint64(2), c.ValidityThreshold())
	assert.Len(t, c.Authorities(), 4)
}

func TestCheckCertificate(t *testing.T) {
	t.Parallel()

	c, signers := newTestCommittee(t, 4)
	order := testOrder(t)

	assert.NoError(t, c.CheckCertificate(certify(t, order, signers[:3]...)))

	// below quorum
	assert.ErrorIs(t, c.CheckCertificate(certify(t, order, signers[:2]...)), types.ErrInvalidCertificate)

	// duplicate signer does not count twice
	dup := certify(t, order, signers[0], signers[1], signers[1])
	assert.ErrorIs(t, c.CheckCertificate(dup), types.ErrInvalidCertificate)

	// stranger
	key, err := btcec.NewPrivateKey(btcec.S256())
	assert.NoError(t, err)

	stranger := certify(t, order, signers[0], signers[1], crypto.NewSigner(key))
	assert.ErrorIs(t, c.CheckCertificate(stranger), types.ErrInvalidCertificate)

	// signature over another order
	forged := certify(t, order, signers[:3]...)
	forged.Signatures[2].Signature = certify(t, testOrder(t), signers[2]).Signatures[0].Signature
	assert.ErrorIs(t, c.CheckCertificate(forged), types.ErrInvalidCertificate)

	assert.ErrorIs(t, c.CheckCertificate(nil), types.ErrInvalidCertificate)
}
