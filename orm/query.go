package orm

import (
	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
)

func (mb *modelBucket) Register(path string, r custody.QueryRouter) {
	r.Register("/"+path, mb)
}

// Query returns the serialized models for given key, or all models whose
// key starts with given prefix. Returned keys do not carry the bucket
// prefix.
func (mb *modelBucket) Query(db custody.ReadOnlyKVStore, mod string, data []byte) ([]custody.Model, error) {
	switch mod {
	case custody.KeyQueryMod:
		raw, err := db.Get(mb.dbKey(data))
		if err != nil {
			return nil, err
		}
		if raw == nil {
			return nil, nil
		}
		return []custody.Model{custody.Pair(data, raw)}, nil
	case custody.PrefixQueryMod:
		start := mb.dbKey(data)
		it, err := db.Iterator(start, prefixEnd(start))
		if err != nil {
			return nil, err
		}
		defer it.Release()

		var res []custody.Model
		for {
			key, value, err := it.Next()
			if errors.ErrIteratorDone.Is(err) {
				return res, nil
			}
			if err != nil {
				return nil, err
			}
			res = append(res, custody.Pair(key[len(mb.prefix):], value))
		}
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
}
