package jsonrpc

import (
	"github.com/dogechain-lab/objectchain/helper/keccak"
	"github.com/dogechain-lab/objectchain/versioning"
)

// Web3 is the web3 jsonrpc endpoint
type Web3 struct {
	metrics *Metrics
}

// ClientVersion returns the version of the web3 client (web3_clientVersion)
func (w *Web3) ClientVersion() (interface{}, error) {
	w.metrics.Web3APICounterInc(Web3ClientVersionLabel)

	return versioning.ClientVersion(), nil
}

// Sha3 returns Keccak-256 (not the standardized SHA3-256) of the given data
func (w *Web3) Sha3(val argBytes) (interface{}, error) {
	w.metrics.Web3APICounterInc(Web3Sha3Label)

	return argBytes(keccak.Keccak256(nil, val)), nil
}
