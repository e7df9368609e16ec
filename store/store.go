package store

import (
	"errors"
	"fmt"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"

	"github.com/dogechain-lab/objectchain/helper/kvdb"
	"github.com/dogechain-lab/objectchain/helper/rawdb"
	"github.com/dogechain-lab/objectchain/types"
)

const (
	DefaultObjectCacheSize = 16 * 1024
	DefaultRawCacheSize    = 32 * 1024 * 1024
)

// Config holds the cache sizes of the store. Zero values select defaults.
type Config struct {
	ObjectCacheSize int
	RawCacheSize    int
	Stripes         int
}

func DefaultConfig() *Config {
	return &Config{
		ObjectCacheSize: DefaultObjectCacheSize,
		RawCacheSize:    DefaultRawCacheSize,
		Stripes:         defaultStripes,
	}
}

type objectKey struct {
	id      types.ObjectID
	version types.SequenceNumber
}

// Store is the persistent object store of one authority. Object versions are
// immutable once written, so they are cached by (id, version). Certificates
// and effects are cached in their encoded form.
type Store struct {
	logger hclog.Logger
	db     kvdb.KVBatchStorage

	objects *lru.Cache
	raw     *fastcache.Cache
	locks   *stripedMutex
}

func NewStore(logger hclog.Logger, db kvdb.KVBatchStorage, config *Config) (*Store, error) {
	if config == nil {
		config = DefaultConfig()
	}

	objectCacheSize := config.ObjectCacheSize
	if objectCacheSize <= 0 {
		objectCacheSize = DefaultObjectCacheSize
	}

	rawCacheSize := config.RawCacheSize
	if rawCacheSize <= 0 {
		rawCacheSize = DefaultRawCacheSize
	}

	objects, err := lru.New(objectCacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{
		logger:  logger.Named("store"),
		db:      db,
		objects: objects,
		raw:     fastcache.New(rawCacheSize),
		locks:   newStripedMutex(config.Stripes),
	}, nil
}

func (s *Store) Close() error {
	s.raw.Reset()
	s.objects.Purge()

	return s.db.Close()
}

// GetObject returns the latest version of an object, or nil when the object
// does not exist or was deleted. The result belongs to the caller.
func (s *Store) GetObject(id types.ObjectID) (*types.Object, error) {
	ref, err := rawdb.ReadLatestObjectRef(s.db, id)
	if errors.Is(err, rawdb.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	obj, err := s.readObject(id, ref.Version)
	if err != nil {
		return nil, fmt.Errorf("latest version %d of %s: %w", ref.Version, id, err)
	}

	return obj, nil
}

// GetObjects returns the latest version of each id, nil for missing ones
func (s *Store) GetObjects(ids []types.ObjectID) ([]*types.Object, error) {
	objs := make([]*types.Object, len(ids))

	for i, id := range ids {
		obj, err := s.GetObject(id)
		if err != nil {
			return nil, err
		}

		objs[i] = obj
	}

	return objs, nil
}

// GetObjectVersion returns a historical version, or nil if it was never written
func (s *Store) GetObjectVersion(id types.ObjectID, version types.SequenceNumber) (*types.Object, error) {
	obj, err := s.readObject(id, version)
	if errors.Is(err, rawdb.ErrNotFound) {
		return nil, nil
	}

	return obj, err
}

func (s *Store) readObject(id types.ObjectID, version types.SequenceNumber) (*types.Object, error) {
	key := objectKey{id: id, version: version}

	if cached, ok := s.objects.Get(key); ok {
		//nolint:forcetypeassert
		return cached.(*types.Object).Copy(), nil
	}

	obj, err := rawdb.ReadObject(s.db, id, version)
	if err != nil {
		return nil, err
	}

	s.objects.Add(key, obj.Copy())

	return obj, nil
}

// InsertObject stores an object outside of any transaction, as genesis does.
// It becomes the latest version, gets a genesis parent entry and, unless it
// is read-only, a free lock slot.
func (s *Store) InsertObject(obj *types.Object) error {
	return s.InsertObjects([]*types.Object{obj})
}

// InsertObjects is InsertObject for many objects in one batch
func (s *Store) InsertObjects(objs []*types.Object) error {
	batch := s.db.NewBatch()

	for _, obj := range objs {
		prev, err := s.GetObject(obj.ID)
		if err != nil {
			return err
		}

		if prev != nil && prev.Owner != obj.Owner {
			if err := rawdb.DeleteOwnerIndex(batch, prev.Owner, obj.ID); err != nil {
				return err
			}
		}

		ref := obj.Ref()

		if err := writeVersion(batch, obj, ref, obj.PreviousTransaction); err != nil {
			return err
		}

		if !obj.IsReadOnly() {
			if err := initLockSlot(s.db, batch, ref); err != nil {
				return err
			}
		}
	}

	if err := batch.Write(); err != nil {
		return err
	}

	for _, obj := range objs {
		s.objects.Add(objectKey{id: obj.ID, version: obj.Version}, obj.Copy())
	}

	return nil
}

// writeVersion records obj as the latest version of its id
func writeVersion(w kvdb.KVWriter, obj *types.Object, ref types.ObjectRef, parent types.TransactionDigest) error {
	if err := rawdb.WriteObject(w, obj); err != nil {
		return err
	}

	if err := rawdb.WriteLatestObjectRef(w, ref); err != nil {
		return err
	}

	if err := rawdb.WriteParent(w, ref, parent); err != nil {
		return err
	}

	return rawdb.WriteOwnerIndex(w, obj.Owner, ref)
}

// GetModule returns the bytes of a published module, nil if unknown
func (s *Store) GetModule(id types.ModuleID) ([]byte, error) {
	obj, err := s.GetObject(id.Address)
	if err != nil || obj == nil {
		return nil, err
	}

	pkg := obj.Package()
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", types.ErrMoveObjectAsPackage, id.Address)
	}

	return pkg.Modules[id.Name], nil
}

// GetAccountObjects lists the latest refs of the objects owned by owner
func (s *Store) GetAccountObjects(owner types.Address) ([]types.ObjectRef, error) {
	return rawdb.ReadOwnedObjects(s.db, owner)
}

// IsGenesisApplied reports whether a genesis was already written, with its digest
func (s *Store) IsGenesisApplied() (types.Digest, bool, error) {
	return rawdb.ReadGenesis(s.db)
}

func (s *Store) MarkGenesis(digest types.Digest) error {
	return rawdb.WriteGenesis(s.db, digest)
}
