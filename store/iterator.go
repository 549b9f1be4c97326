package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/custody/errors"
)

// ascendBtree returns a snapshot of all cached items in [start, end), in
// ascending order. A nil boundary is open.
func ascendBtree(bt *btree.BTree, start, end []byte) []keyer {
	var items []keyer
	collect := func(i btree.Item) bool {
		items = append(items, i.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree returns a snapshot of all cached items in [start, end), in
// descending order. A nil boundary is open.
func descendBtree(bt *btree.BTree, start, end []byte) []keyer {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// mergeIterator combines the cached items with the iterator of the parent
// store. Cached items shadow parent entries with the same key and cached
// deletes hide them.
type mergeIterator struct {
	items     []keyer
	parent    Iterator
	ascending bool

	// parent entry read ahead, if any
	pkey, pvalue []byte
	pdone        bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(items []keyer, parent Iterator, ascending bool) (*mergeIterator, error) {
	it := &mergeIterator{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
	if err := it.advanceParent(); err != nil {
		parent.Release()
		return nil, err
	}
	return it, nil
}

func (it *mergeIterator) advanceParent() error {
	key, value, err := it.parent.Next()
	if err != nil {
		if errors.ErrIteratorDone.Is(err) {
			it.pdone = true
			it.pkey, it.pvalue = nil, nil
			return nil
		}
		return err
	}
	it.pkey, it.pvalue = key, value
	return nil
}

// before returns true if key a comes before key b in iteration order.
func (it *mergeIterator) before(a, b []byte) bool {
	cmp := bytes.Compare(a, b)
	if it.ascending {
		return cmp < 0
	}
	return cmp > 0
}

// Next returns the next visible entry.
func (it *mergeIterator) Next() (key, value []byte, err error) {
	for {
		hasItem := len(it.items) > 0
		switch {
		case !hasItem && it.pdone:
			return nil, nil, errors.ErrIteratorDone
		case !hasItem || (!it.pdone && it.before(it.pkey, it.items[0].Key())):
			key, value = it.pkey, it.pvalue
			if err := it.advanceParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		}

		item := it.items[0]
		it.items = it.items[1:]
		if !it.pdone && bytes.Equal(item.Key(), it.pkey) {
			// Cached entry shadows the parent one.
			if err := it.advanceParent(); err != nil {
				return nil, nil, err
			}
		}
		if s, ok := item.(setItem); ok {
			return s.key, s.value, nil
		}
		// Deleted items are skipped.
	}
}

// Release releases the Iterator.
func (it *mergeIterator) Release() {
	it.parent.Release()
	it.items = nil
}
