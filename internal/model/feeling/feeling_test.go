package feeling

import "testing"

func TestSeedCatalogIsStable(t *testing.T) {
	want := []string{
		"many-questions",
		"never-gave-up",
		"good-ideas",
		"worked-hard",
		"helped-others",
		"enjoyed-learning",
	}

	seeds := Seed()
	if len(seeds) != len(want) {
		t.Fatalf("expected %d feelings, got %d", len(want), len(seeds))
	}
	for i, id := range want {
		if seeds[i].ID != id {
			t.Fatalf("expected id %s at %d, got %s", id, i, seeds[i].ID)
		}
	}
}

func TestMemoryStoreFindByID(t *testing.T) {
	store := NewMemoryStore(Seed())

	f, ok := store.FindByID("worked-hard")
	if !ok {
		t.Fatal("expected worked-hard to exist")
	}
	if f.Label == "" || f.Emoji == "" {
		t.Fatalf("feeling should carry label and emoji: %+v", f)
	}

	if _, ok := store.FindByID("missing"); ok {
		t.Fatal("expected missing id to be absent")
	}
}
