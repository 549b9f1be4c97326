package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/custody/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIavlStore(t *testing.T) {
	store.NewTestSuite(func() (store.CacheableKVStore, func()) {
		return MockCommitStore().CacheWrap(), func() {}
	}).Run(t)
}

func TestCommitPersistence(t *testing.T) {
	Convey("Given a commit store on disk", t, func() {
		dir, err := ioutil.TempDir("", "custody-iavl")
		So(err, ShouldBeNil)
		Reset(func() { os.RemoveAll(dir) })

		db := NewCommitStore(dir, "state")
		So(db.LoadLatestVersion(), ShouldBeNil)

		Convey("uncommitted writes are not visible at the committed state", func() {
			cache := db.CacheWrap()
			So(cache.Set([]byte("wallet"), []byte("v1")), ShouldBeNil)
			So(cache.Write(), ShouldBeNil)

			got, err := db.Get([]byte("wallet"))
			So(err, ShouldBeNil)
			So(got, ShouldBeNil)

			Convey("and become visible after commit", func() {
				id, err := db.Commit()
				So(err, ShouldBeNil)
				So(id.Version, ShouldEqual, 1)
				So(id.Hash, ShouldNotBeEmpty)

				got, err := db.Get([]byte("wallet"))
				So(err, ShouldBeNil)
				So(got, ShouldResemble, []byte("v1"))

				latest, err := db.LatestVersion()
				So(err, ShouldBeNil)
				So(latest, ShouldResemble, id)
			})
		})
	})
}
