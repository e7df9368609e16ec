package committee

import (
	"fmt"
	"sort"

	"github.com/dogechain-lab/objectchain/crypto"
	"github.com/dogechain-lab/objectchain/types"
)

// Committee is the set of authorities and their voting rights
type Committee struct {
	votingRights map[types.AuthorityName]uint64
	totalVotes   uint64
}

func NewCommittee(votingRights map[types.AuthorityName]uint64) *Committee {
	c := &Committee{
		votingRights: make(map[types.AuthorityName]uint64, len(votingRights)),
	}

	for name, votes := range votingRights {
		c.votingRights[name] = votes
		c.totalVotes += votes
	}

	return c
}

func (c *Committee) Weight(name types.AuthorityName) uint64 {
	return c.votingRights[name]
}

func (c *Committee) TotalVotes() uint64 {
	return c.totalVotes
}

// QuorumThreshold is the weight that implies a quorum of honest authorities
func (c *Committee) QuorumThreshold() uint64 {
	return 2*c.totalVotes/3 + 1
}

// ValidityThreshold is the weight that implies at least one honest authority
func (c *Committee) ValidityThreshold() uint64 {
	return (c.totalVotes + 2) / 3
}

// Authorities lists the members in a stable order
func (c *Committee) Authorities() []types.AuthorityName {
	names := make([]types.AuthorityName, 0, len(c.votingRights))
	for name := range c.votingRights {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return string(names[i][:]) < string(names[j][:])
	})

	return names
}

// CheckCertificate verifies that the certificate carries distinct valid
// signatures from members holding at least a quorum of votes
func (c *Committee) CheckCertificate(cert *types.CertifiedOrder) error {
	if cert == nil || cert.Order == nil {
		return fmt.Errorf("%w: empty certificate", types.ErrInvalidCertificate)
	}

	digest := cert.Digest()
	seen := make(map[types.AuthorityName]struct{}, len(cert.Signatures))

	var weight uint64

	for _, sig := range cert.Signatures {
		if _, ok := seen[sig.Authority]; ok {
			return fmt.Errorf("%w: duplicate signer %s", types.ErrInvalidCertificate, sig.Authority)
		}

		seen[sig.Authority] = struct{}{}

		votes := c.Weight(sig.Authority)
		if votes == 0 {
			return fmt.Errorf("%w: %v %s", types.ErrInvalidCertificate, types.ErrUnknownSigner, sig.Authority)
		}

		if err := crypto.VerifyAuthoritySignature(sig.Authority, digest[:], sig.Signature); err != nil {
			return fmt.Errorf("%w: %v", types.ErrInvalidCertificate, err)
		}

		weight += votes
	}

	if weight < c.QuorumThreshold() {
		return fmt.Errorf("%w: weight %d below quorum %d", types.ErrInvalidCertificate, weight, c.QuorumThreshold())
	}

	return nil
}
