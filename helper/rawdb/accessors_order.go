package rawdb

import (
	"github.com/dogechain-lab/objectchain/helper/kvdb"
	"github.com/dogechain-lab/objectchain/types"
)

func ReadSignedOrder(db kvdb.KVReader, digest types.TransactionDigest) (*types.SignedOrder, error) {
	signed := new(types.SignedOrder)
	err := readRLP(db, signedOrderKey(digest), signed)

	return signed, err
}

func WriteSignedOrder(db kvdb.KVWriter, signed *types.SignedOrder) error {
	return writeRLP(db, signedOrderKey(signed.Order.Digest()), signed)
}

// ReadCertificateRaw returns the encoded certificate of a transaction
func ReadCertificateRaw(db kvdb.KVReader, digest types.TransactionDigest) ([]byte, error) {
	return readRaw(db, certificateKey(digest))
}

func ReadCertificate(db kvdb.KVReader, digest types.TransactionDigest) (*types.CertifiedOrder, error) {
	cert := new(types.CertifiedOrder)
	err := readRLP(db, certificateKey(digest), cert)

	return cert, err
}

func WriteCertificateRaw(db kvdb.KVWriter, digest types.TransactionDigest, data []byte) error {
	return db.Set(certificateKey(digest), data)
}

// ReadSignedEffectsRaw returns the encoded signed effects of a transaction
func ReadSignedEffectsRaw(db kvdb.KVReader, digest types.TransactionDigest) ([]byte, error) {
	return readRaw(db, effectsKey(digest))
}

func ReadSignedEffects(db kvdb.KVReader, digest types.TransactionDigest) (*types.SignedOrderEffects, error) {
	effects := new(types.SignedOrderEffects)
	err := readRLP(db, effectsKey(digest), effects)

	return effects, err
}

func WriteSignedEffectsRaw(db kvdb.KVWriter, digest types.TransactionDigest, data []byte) error {
	return db.Set(effectsKey(digest), data)
}
