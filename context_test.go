package custody

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/tendermint/tendermint/libs/log"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetHeight(ctx); ok {
		t.Fatal("height must not be set")
	}
	ctx = WithHeight(ctx, 7)
	if h, ok := GetHeight(ctx); !ok || h != 7 {
		t.Fatalf("want height 7, got %d", h)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("overwriting the height must panic")
		}
	}()
	WithHeight(ctx, 8)
}

func TestContextChainID(t *testing.T) {
	ctx := WithChainID(context.Background(), "custody-test")
	if got := GetChainID(ctx); got != "custody-test" {
		t.Fatalf("unexpected chain id %q", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("invalid chain id must panic")
		}
	}()
	WithChainID(context.Background(), "a b")
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	if GetLogger(ctx) != DefaultLogger {
		t.Fatal("default logger expected")
	}

	var buf bytes.Buffer
	ctx = WithLogger(ctx, log.NewTMLogger(&buf))
	ctx = WithLogInfo(ctx, "wallet", "abc")
	GetLogger(ctx).Info("escape triggered")
	if !strings.Contains(buf.String(), "wallet=abc") {
		t.Fatalf("log info missing: %q", buf.String())
	}
}
