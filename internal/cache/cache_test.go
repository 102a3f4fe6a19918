package cache

import (
	"fmt"
	"testing"
)

type entry struct {
	SQL  string `msgpack:"sql"`
	Rows int    `msgpack:"rows"`
}

func TestPutGet(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	key := Key("hash", "SELECT 1")
	if err := c.Put(key, entry{SQL: "SELECT 1", Rows: 3}); err != nil {
		t.Fatal(err)
	}

	var got entry
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("entry not found")
	}
	if got.SQL != "SELECT 1" || got.Rows != 3 {
		t.Errorf("got %+v", got)
	}
}

func TestGetMissing(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	var got entry
	ok, err := c.Get(Key("nope"), &got)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("missing key reported as present")
	}
}

func TestEviction(t *testing.T) {
	c, err := New(2)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	for i := 0; i < 3; i++ {
		if err := c.Put(Key(fmt.Sprintf("k%d", i)), entry{Rows: i}); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}

	var got entry
	if ok, _ := c.Get(Key("k0"), &got); ok {
		t.Error("oldest entry should have been evicted")
	}
	if ok, _ := c.Get(Key("k2"), &got); !ok {
		t.Error("newest entry missing")
	}
}

func TestKeyStable(t *testing.T) {
	if Key("a", "b") != Key("a", "b") {
		t.Error("Key must be deterministic")
	}
	if Key("a", "b") == Key("ab") {
		t.Error("Key must separate its parts")
	}
}
