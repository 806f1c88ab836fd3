package account

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront/internal/page"
	"github.com/angelmondragon/storefront/pkg/storage"
)

type brokenKV struct{}

func (brokenKV) GetItem(context.Context, string) (string, bool, error) {
	return "", false, errors.New("down")
}
func (brokenKV) SetItem(context.Context, string, string) error { return errors.New("down") }
func (brokenKV) RemoveItem(context.Context, string) error      { return errors.New("down") }

func TestLoggedIn(t *testing.T) {
	ctx := context.Background()
	kv := storage.Scope(storage.NewMemoryStore(), "s")

	if ok, err := LoggedIn(ctx, kv, ""); err != nil || ok {
		t.Fatalf("expected logged out for missing flag, got %v %v", ok, err)
	}
	for raw, want := range map[string]bool{"true": true, "1": true, "yes": true, "false": false, "0": false, "null": false, " NULL ": false, "": false} {
		if err := kv.SetItem(ctx, DefaultLoginKey, raw); err != nil {
			t.Fatalf("seed: %v", err)
		}
		got, err := LoggedIn(ctx, kv, DefaultLoginKey)
		if err != nil {
			t.Fatalf("LoggedIn: %v", err)
		}
		if got != want {
			t.Fatalf("flag %q: expected %v, got %v", raw, want, got)
		}
	}
}

func TestHeader(t *testing.T) {
	ctx := context.Background()
	kv := storage.Scope(storage.NewMemoryStore(), "s")
	doc := page.New("Home", page.RegionAccount)

	links := Header(ctx, doc, kv, DefaultLoginKey, nil)
	if len(links) != 2 || links[0].Label != "Login" || links[1].Label != "Register" {
		t.Fatalf("unexpected guest links %+v", links)
	}
	el, _ := doc.Region(page.RegionAccount)
	if !strings.Contains(string(el.HTML), `href="/register"`) {
		t.Fatalf("guest links not rendered: %s", el.HTML)
	}

	if err := kv.SetItem(ctx, DefaultLoginKey, "true"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	links = Header(ctx, doc, kv, DefaultLoginKey, nil)
	if len(links) != 1 || links[0].Href != "/profile" {
		t.Fatalf("unexpected profile links %+v", links)
	}
	el, _ = doc.Region(page.RegionAccount)
	if strings.Contains(string(el.HTML), "Register") {
		t.Fatalf("register link should be hidden when logged in: %s", el.HTML)
	}
}

func TestHeaderFallsBackToGuestOnStorageError(t *testing.T) {
	links := Header(context.Background(), nil, brokenKV{}, "", nil)
	if len(links) != 2 {
		t.Fatalf("expected guest links, got %+v", links)
	}
}
