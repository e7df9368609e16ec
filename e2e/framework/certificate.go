package framework

import (
	"errors"

	"github.com/dogechain-lab/objectchain/types"
)

var ErrNoQuorum = errors.New("not enough authorities signed")

// Certify collects signed orders until quorum authorities signed, in client
// order, and returns the certificate
func Certify(order *types.Order, quorum int, clients ...*Client) (*types.CertifiedOrder, error) {
	cert := &types.CertifiedOrder{Order: order}

	for _, client := range clients {
		if len(cert.Signatures) == quorum {
			break
		}

		resp, err := client.HandleOrder(order)
		if err != nil || resp.SignedOrder == nil {
			continue
		}

		cert.Signatures = append(cert.Signatures, types.AuthoritySignature{
			Authority: resp.SignedOrder.Authority,
			Signature: resp.SignedOrder.Signature,
		})
	}

	if len(cert.Signatures) < quorum {
		return cert, ErrNoQuorum
	}

	return cert, nil
}
