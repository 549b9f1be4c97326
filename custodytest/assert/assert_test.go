package assert

import (
	"fmt"
	"testing"

	"github.com/iov-one/custody/errors"
)

type recorder struct {
	failed bool
}

func (r *recorder) Helper()                       {}
func (r *recorder) Fatal(...interface{})          { r.failed = true }
func (r *recorder) Fatalf(string, ...interface{}) { r.failed = true }

func TestNil(t *testing.T) {
	var typedNil *int
	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":               {value: nil},
		"typed nil":         {value: typedNil},
		"error":             {value: fmt.Errorf("boom"), wantFail: true},
		"non nilable value": {value: 3, wantFail: true},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var r recorder
			Nil(&r, tc.value)
			if r.failed != tc.wantFail {
				t.Fatalf("want failed=%v", tc.wantFail)
			}
		})
	}
}

func TestIsErr(t *testing.T) {
	var r recorder
	IsErr(&r, errors.ErrNotFound, errors.Wrap(errors.ErrNotFound, "wallet"))
	if r.failed {
		t.Fatal("wrapped error must match")
	}
	IsErr(&r, errors.ErrNotFound, errors.ErrUnauthorized)
	if !r.failed {
		t.Fatal("different errors must not match")
	}
}

func TestEqual(t *testing.T) {
	var r recorder
	Equal(&r, []byte("a"), []byte("a"))
	if r.failed {
		t.Fatal("equal slices")
	}
	Equal(&r, 1, int64(1))
	if !r.failed {
		t.Fatal("different types must not be equal")
	}
}
