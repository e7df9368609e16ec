package store

import (
	"errors"
	"fmt"

	"github.com/dogechain-lab/objectchain/helper/rawdb"
	"github.com/dogechain-lab/objectchain/types"
)

var (
	certificateCachePrefix = []byte("c")
	effectsCachePrefix     = []byte("e")
)

func cacheKey(prefix []byte, digest types.TransactionDigest) []byte {
	return append(append(make([]byte, 0, len(prefix)+types.DigestLength), prefix...), digest.Bytes()...)
}

// readCached returns the encoded value under key, served from the byte cache
// when possible. A missing value returns nil.
func (s *Store) readCached(
	key []byte,
	read func() ([]byte, error),
) ([]byte, error) {
	if data := s.raw.GetBig(nil, key); len(data) > 0 {
		return data, nil
	}

	data, err := read()
	if errors.Is(err, rawdb.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	s.raw.SetBig(key, data)

	return data, nil
}

// ReadCertificate returns the certificate executed for digest, nil if none
func (s *Store) ReadCertificate(digest types.TransactionDigest) (*types.CertifiedOrder, error) {
	data, err := s.readCached(cacheKey(certificateCachePrefix, digest), func() ([]byte, error) {
		return rawdb.ReadCertificateRaw(s.db, digest)
	})
	if err != nil || data == nil {
		return nil, err
	}

	cert := new(types.CertifiedOrder)
	if err := cert.UnmarshalRLP(data); err != nil {
		return nil, fmt.Errorf("certificate %s: %w", digest, err)
	}

	return cert, nil
}

// ReadSignedEffects returns the effects signed for digest, nil if none
func (s *Store) ReadSignedEffects(digest types.TransactionDigest) (*types.SignedOrderEffects, error) {
	data, err := s.readCached(cacheKey(effectsCachePrefix, digest), func() ([]byte, error) {
		return rawdb.ReadSignedEffectsRaw(s.db, digest)
	})
	if err != nil || data == nil {
		return nil, err
	}

	effects := new(types.SignedOrderEffects)
	if err := effects.UnmarshalRLP(data); err != nil {
		return nil, fmt.Errorf("effects %s: %w", digest, err)
	}

	return effects, nil
}

// ReadSignedOrder returns the order this authority signed under digest, nil if none
func (s *Store) ReadSignedOrder(digest types.TransactionDigest) (*types.SignedOrder, error) {
	signed, err := rawdb.ReadSignedOrder(s.db, digest)
	if errors.Is(err, rawdb.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return signed, nil
}

// GetOrderInfo collects everything recorded for one transaction. Fields the
// authority never produced are nil.
func (s *Store) GetOrderInfo(digest types.TransactionDigest) (*types.OrderInfoResponse, error) {
	signed, err := s.ReadSignedOrder(digest)
	if err != nil {
		return nil, err
	}

	cert, err := s.ReadCertificate(digest)
	if err != nil {
		return nil, err
	}

	effects, err := s.ReadSignedEffects(digest)
	if err != nil {
		return nil, err
	}

	return &types.OrderInfoResponse{
		SignedOrder:    signed,
		CertifiedOrder: cert,
		SignedEffects:  effects,
	}, nil
}

// Changes is the outcome of one execution ready to be committed. Inputs are
// the objects as read before execution, ActiveInputs the refs of the mutable
// ones whose lock slots must exist. Deleted holds the refs reported in the
// effects, at the version the deletion creates.
type Changes struct {
	Inputs       []*types.Object
	ActiveInputs []types.ObjectRef
	Written      []*types.Object
	Deleted      []types.ObjectRef
}

// UpdateState commits one executed certificate with its effects in a single
// batch. A certificate is committed at most once: a second call returns what
// the first one recorded.
func (s *Store) UpdateState(
	changes *Changes,
	cert *types.CertifiedOrder,
	signedEffects *types.SignedOrderEffects,
) (*types.OrderInfoResponse, error) {
	digest := cert.Digest()

	unlock := s.locks.lock(append(refDigests(changes.ActiveInputs), digest)...)
	defer unlock()

	if existing, err := s.ReadCertificate(digest); err != nil {
		return nil, err
	} else if existing != nil {
		s.logger.Debug("certificate already committed", "digest", digest)

		return s.GetOrderInfo(digest)
	}

	for _, ref := range changes.ActiveInputs {
		if _, err := rawdb.ReadOrderLock(s.db, ref); errors.Is(err, rawdb.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", types.ErrOrderLockDoesNotExist, ref)
		} else if err != nil {
			return nil, err
		}
	}

	owners := make(map[types.ObjectID]types.Address, len(changes.Inputs))
	for _, obj := range changes.Inputs {
		owners[obj.ID] = obj.Owner
	}

	certRaw := cert.MarshalRLP()
	effectsRaw := signedEffects.MarshalRLP()

	batch := s.db.NewBatch()

	if err := rawdb.WriteCertificateRaw(batch, digest, certRaw); err != nil {
		return nil, err
	}

	if err := rawdb.WriteSignedEffectsRaw(batch, digest, effectsRaw); err != nil {
		return nil, err
	}

	for _, ref := range changes.Deleted {
		if err := rawdb.DeleteLatestObjectRef(batch, ref.ObjectID); err != nil {
			return nil, err
		}

		if owner, ok := owners[ref.ObjectID]; ok {
			if err := rawdb.DeleteOwnerIndex(batch, owner, ref.ObjectID); err != nil {
				return nil, err
			}
		}

		// wrapped objects share the deletion marker so a later unwrap finds it
		marker := types.ObjectRef{ObjectID: ref.ObjectID, Version: ref.Version, Digest: types.ObjectDigestDeleted}
		if err := rawdb.WriteParent(batch, marker, digest); err != nil {
			return nil, err
		}
	}

	for _, obj := range changes.Written {
		ref := obj.Ref()

		if owner, ok := owners[obj.ID]; ok && owner != obj.Owner {
			if err := rawdb.DeleteOwnerIndex(batch, owner, obj.ID); err != nil {
				return nil, err
			}
		}

		if err := writeVersion(batch, obj, ref, digest); err != nil {
			return nil, err
		}

		if !obj.IsReadOnly() {
			if err := initLockSlot(s.db, batch, ref); err != nil {
				return nil, err
			}
		}
	}

	if err := batch.Write(); err != nil {
		return nil, fmt.Errorf("commit %s: %w", digest, err)
	}

	s.raw.SetBig(cacheKey(certificateCachePrefix, digest), certRaw)
	s.raw.SetBig(cacheKey(effectsCachePrefix, digest), effectsRaw)

	for _, obj := range changes.Written {
		s.objects.Add(objectKey{id: obj.ID, version: obj.Version}, obj.Copy())
	}

	signed, err := s.ReadSignedOrder(digest)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("committed certificate", "digest", digest,
		"written", len(changes.Written), "deleted", len(changes.Deleted))

	return &types.OrderInfoResponse{
		SignedOrder:    signed,
		CertifiedOrder: cert,
		SignedEffects:  signedEffects,
	}, nil
}
