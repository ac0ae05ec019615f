package storage

import (
	"testing"
	"time"
)

// stubNow freezes the package clock at base and returns an advance function.
func stubNow(t *testing.T, base time.Time) func(d time.Duration) {
	t.Helper()
	current := base
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return func(d time.Duration) { current = current.Add(d) }
}

func TestStore_RoundTrip(t *testing.T) {
	store := New(NewMemoryMedium(), "Test_")

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	in := payload{Name: "hello", Count: 42}

	if err := store.Set("thing", in, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out payload
	if !store.Get("thing", &out) {
		t.Fatal("Get() reported miss for freshly set key")
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}
}

func TestStore_GetBeforeExpiry(t *testing.T) {
	advance := stubNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	store := New(NewMemoryMedium(), "Test_")

	if err := store.Set("k", "v", 10*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	advance(9 * time.Second)

	// Repeated reads before the boundary keep returning the value.
	for i := 0; i < 3; i++ {
		var v string
		if !store.Get("k", &v) {
			t.Fatalf("read %d: Get() missed before expiry", i)
		}
		if v != "v" {
			t.Fatalf("read %d: Get() = %q, want %q", i, v, "v")
		}
	}
}

func TestStore_GetAfterExpiry_RemovesEntry(t *testing.T) {
	advance := stubNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	medium := NewMemoryMedium()
	store := New(medium, "Test_")

	if err := store.Set("k", "v", 10*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	advance(10 * time.Second) // expiry is not in the future any more

	if store.Get("k", nil) {
		t.Error("Get() returned a value at the expiry boundary")
	}

	// The expired entry must be physically gone from the medium.
	if _, found, _ := medium.GetItem(store.Key("k")); found {
		t.Error("expired entry still present on medium after read")
	}
}

func TestStore_NoTTL_NeverExpires(t *testing.T) {
	advance := stubNow(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	store := New(NewMemoryMedium(), "Test_")

	if err := store.Set("k", 7, 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	advance(365 * 24 * time.Hour)

	var v int
	if !store.Get("k", &v) || v != 7 {
		t.Errorf("Get() after a year = (%d, miss?), want 7", v)
	}
}

func TestStore_CorruptRecord_SelfHeals(t *testing.T) {
	medium := NewMemoryMedium()
	store := New(medium, "Test_")

	if err := medium.SetItem(store.Key("bad"), "{not json"); err != nil {
		t.Fatalf("seeding corrupt record: %v", err)
	}

	if store.Get("bad", nil) {
		t.Error("Get() returned a value for a corrupt record")
	}
	if _, found, _ := medium.GetItem(store.Key("bad")); found {
		t.Error("corrupt record still present on medium after read")
	}
}

func TestStore_GetItem_ReturnsStoredAt(t *testing.T) {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	stubNow(t, base)
	store := New(NewMemoryMedium(), "Test_")

	if err := store.Set("k", "v", time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	item, ok := store.GetItem("k")
	if !ok {
		t.Fatal("GetItem() missed")
	}
	if !item.StoredAt.Equal(base) {
		t.Errorf("StoredAt = %v, want %v", item.StoredAt, base)
	}
}

func TestStore_KeyNamespacing(t *testing.T) {
	medium := NewMemoryMedium()
	a := New(medium, "A_")
	b := New(medium, "B_")

	if err := a.Set("k", "from-a", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := b.Set("k", "from-b", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got string
	if !a.Get("k", &got) || got != "from-a" {
		t.Errorf("store A read %q, want %q", got, "from-a")
	}
	if !b.Get("k", &got) || got != "from-b" {
		t.Errorf("store B read %q, want %q", got, "from-b")
	}

	if a.Key("token") != "A_TOKEN" {
		t.Errorf("Key() = %q, want upper-cased prefixed key", a.Key("token"))
	}
}

func TestStore_Remove(t *testing.T) {
	store := New(NewMemoryMedium(), "Test_")

	if err := store.Set("k", "v", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := store.Remove("k"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if store.Get("k", nil) {
		t.Error("Get() returned a value after Remove()")
	}
}
