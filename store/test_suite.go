package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/custody/errors"
	. "github.com/smartystreets/goconvey/convey"
)

// TestSuite runs the same behaviour checks against any CacheableKVStore
// implementation. The in-memory btree store and the iavl adapter both use
// it from their tests.
type TestSuite struct {
	makeBase TestStoreConstructor
}

// TestStoreConstructor returns a fresh, empty store and a cleanup function.
type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

// NewTestSuite returns a suite that tests stores built by constructor.
func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// Run executes all checks of the suite.
func (s *TestSuite) Run(t *testing.T) {
	Convey("Given an empty store", t, func() {
		base, cleanup := s.makeBase()
		Reset(cleanup)

		Convey("cache wraps read through and write back", func() {
			s.cacheWrap(base)
		})
		Convey("child writes shadow parent values", func() {
			s.conflicts(base)
		})
		Convey("iteration merges child and parent", func() {
			s.iterate(base)
		})
	})
}

func (s *TestSuite) cacheWrap(base CacheableKVStore) {
	owner, wallet := []byte("owner"), []byte("wallet-1")
	assertGetHas(base, owner, nil, false)
	So(base.Set(owner, wallet), ShouldBeNil)
	assertGetHas(base, owner, wallet, true)

	cache := base.CacheWrap()
	assertGetHas(cache, owner, wallet, true)

	guardian, other := []byte("guardian"), []byte("wallet-2")
	So(cache.Set(guardian, other), ShouldBeNil)
	assertGetHas(cache, guardian, other, true)
	assertGetHas(base, guardian, nil, false)

	So(cache.Write(), ShouldBeNil)
	assertGetHas(base, owner, wallet, true)
	assertGetHas(base, guardian, other, true)

	discarded := base.CacheWrap()
	So(discarded.Set([]byte("escape"), []byte("pending")), ShouldBeNil)
	discarded.Discard()
	assertGetHas(base, []byte("escape"), nil, false)

	deleting := base.CacheWrap()
	So(deleting.Delete(owner), ShouldBeNil)
	assertGetHas(deleting, owner, nil, false)
	assertGetHas(base, owner, wallet, true)
	So(deleting.Write(), ShouldBeNil)
	assertGetHas(base, owner, nil, false)
	assertGetHas(base, guardian, other, true)
}

func (s *TestSuite) conflicts(base CacheableKVStore) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	So(SetOp(ks[1], vs[1]).Apply(base), ShouldBeNil)
	So(SetOp(ks[2], vs[2]).Apply(base), ShouldBeNil)

	child := base.CacheWrap()
	So(SetOp(ks[1], vs[0]).Apply(child), ShouldBeNil)
	So(SetOp(ks[3], vs[3]).Apply(child), ShouldBeNil)
	So(DelOp(ks[2]).Apply(child), ShouldBeNil)

	assertGetHas(base, ks[1], vs[1], true)
	assertGetHas(base, ks[2], vs[2], true)
	assertGetHas(base, ks[3], nil, false)

	want := []Model{Pair(ks[1], vs[0]), Pair(ks[2], nil), Pair(ks[3], vs[3])}
	for _, m := range want {
		assertGetHas(child, m.Key, m.Value, m.Value != nil)
	}
	So(child.Write(), ShouldBeNil)
	for _, m := range want {
		assertGetHas(base, m.Key, m.Value, m.Value != nil)
	}
}

func (s *TestSuite) iterate(base CacheableKVStore) {
	parentSet := randModels(20, 8, 32)
	childSet := randModels(20, 8, 32)

	// Child overwrites one parent entry and deletes another.
	overwrite := Pair(parentSet[0].Key, []byte("overwritten"))
	deleted := parentSet[1]

	for _, m := range parentSet {
		So(SetOp(m.Key, m.Value).Apply(base), ShouldBeNil)
	}
	child := base.CacheWrap()
	for _, m := range childSet {
		So(SetOp(m.Key, m.Value).Apply(child), ShouldBeNil)
	}
	So(SetOp(overwrite.Key, overwrite.Value).Apply(child), ShouldBeNil)
	So(DelOp(deleted.Key).Apply(child), ShouldBeNil)

	all := append([]Model{overwrite}, parentSet[2:]...)
	all = sortModels(append(all, childSet...))

	queries := []struct {
		start, end []byte
		reverse    bool
		expected   []Model
	}{
		{nil, nil, false, all},
		{all[5].Key, nil, false, all[5:]},
		{nil, all[30].Key, false, all[:30]},
		{all[7].Key, all[21].Key, false, all[7:21]},
		{nil, nil, true, reverse(all)},
		{all[12].Key, nil, true, reverse(all[12:])},
		{all[3].Key, all[17].Key, true, reverse(all[3:17])},
	}
	for _, q := range queries {
		var iter Iterator
		var err error
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		So(err, ShouldBeNil)
		for _, m := range q.expected {
			key, value, err := iter.Next()
			So(err, ShouldBeNil)
			So(key, ShouldResemble, m.Key)
			So(value, ShouldResemble, m.Value)
		}
		_, _, err = iter.Next()
		So(errors.ErrIteratorDone.Is(err), ShouldBeTrue)
		iter.Release()
	}
}

func assertGetHas(kv ReadOnlyKVStore, key, val []byte, has bool) {
	got, err := kv.Get(key)
	So(err, ShouldBeNil)
	if val == nil {
		So(got, ShouldBeNil)
	} else {
		So(got, ShouldResemble, val)
	}
	exists, err := kv.Has(key)
	So(err, ShouldBeNil)
	So(exists, ShouldEqual, has)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}
