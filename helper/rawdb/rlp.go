package rawdb

import (
	"errors"

	"github.com/dogechain-lab/objectchain/helper/kvdb"
	"github.com/dogechain-lab/objectchain/types"
)

var ErrNotFound = errors.New("not found")

func readRLP(db kvdb.KVReader, key []byte, raw types.RLPUnmarshaler) error {
	data, ok, err := db.Get(key)
	if err != nil {
		return err
	} else if !ok {
		return ErrNotFound
	}

	return raw.UnmarshalRLP(data)
}

func writeRLP(db kvdb.KVWriter, key []byte, raw types.RLPMarshaler) error {
	return db.Set(key, raw.MarshalRLPTo(nil))
}

func readRaw(db kvdb.KVReader, key []byte) ([]byte, error) {
	data, ok, err := db.Get(key)
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrNotFound
	}

	return data, nil
}
