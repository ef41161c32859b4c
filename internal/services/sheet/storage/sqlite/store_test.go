package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/poolsheet/internal/rules/resource"
	"github.com/louisbranch/poolsheet/internal/services/sheet/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sheet.sqlite")
	for i := 0; i < 2; i++ {
		store, err := Open(path)
		if err != nil {
			t.Fatalf("open pass %d: %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close pass %d: %v", i, err)
		}
	}
}

func TestPutGetCharacterRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)

	got, err := store.GetCharacter(context.Background(), "char-1")
	if err != nil {
		t.Fatalf("get character: %v", err)
	}
	if got.Name != "Ada" {
		t.Fatalf("name = %q, want %q", got.Name, "Ada")
	}
	if !got.CreatedAt.Equal(now) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, now)
	}
}

func TestGetCharacterNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetCharacter(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get character error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutCharacterRequiresName(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	err := store.PutCharacter(context.Background(), storage.CharacterRecord{ID: "char-1", Name: "  "})
	if err == nil {
		t.Fatal("expected name error")
	}
}

func TestListResourcesPositionOrder(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)

	luck := resource.New("res-luck", "Luck")
	luck.Tag = "#luck"
	luck.Value = 2
	hp := resource.New("res-hp", "Health")
	hp.MaxValue = 5
	hp.Value = 5
	hp.ReplenishLogic = resource.LogicRestore
	hp.ReplenishTag = "#luck"
	hp.ReplenishCost = 2

	putResource(t, store, "char-1", 1, luck, now)
	putResource(t, store, "char-1", 0, hp, now)

	got, err := store.ListResources(context.Background(), "char-1")
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("resources = %d, want 2", len(got))
	}
	if got[0].Resource.ID != "res-hp" || got[1].Resource.ID != "res-luck" {
		t.Fatalf("order = [%s %s], want [res-hp res-luck]", got[0].Resource.ID, got[1].Resource.ID)
	}
	if got[0].Resource != hp {
		t.Fatalf("hp = %+v, want %+v", got[0].Resource, hp)
	}
	if got[1].Resource.ReplenishLogic != resource.LogicDisabled {
		t.Fatalf("luck logic = %q, want %q", got[1].Resource.ReplenishLogic, resource.LogicDisabled)
	}
}

func TestListResourcesEmpty(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	got, err := store.ListResources(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("resources = %d, want 0", len(got))
	}
}

func TestDeleteResource(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)
	putResource(t, store, "char-1", 0, resource.New("res-1", "Luck"), now)

	if err := store.DeleteResource(context.Background(), "char-1", "res-1"); err != nil {
		t.Fatalf("delete resource: %v", err)
	}
	err := store.DeleteResource(context.Background(), "char-1", "res-1")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestUpdateResourceValues(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)
	a := resource.New("res-a", "A")
	a.Value = 3
	b := resource.New("res-b", "B")
	b.Value = 1
	putResource(t, store, "char-1", 0, a, now)
	putResource(t, store, "char-1", 1, b, now)

	if err := store.UpdateResourceValues(context.Background(), "char-1", map[string]int{"res-a": 0, "res-b": 4}); err != nil {
		t.Fatalf("update values: %v", err)
	}
	got, err := store.ListResources(context.Background(), "char-1")
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	if got[0].Resource.Value != 0 || got[1].Resource.Value != 4 {
		t.Fatalf("values = [%d %d], want [0 4]", got[0].Resource.Value, got[1].Resource.Value)
	}
	if got[0].Resource.Title != "A" {
		t.Fatalf("title = %q, want %q", got[0].Resource.Title, "A")
	}

	err = store.UpdateResourceValues(context.Background(), "char-1", map[string]int{"missing": 1})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("update missing error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestPutGetRollRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)

	locked := 2
	input := storage.RollRecord{
		ID:            "roll-1",
		CharacterID:   "char-1",
		ResourceID:    "res-1",
		Keyword:       "brutal",
		Mode:          "kh",
		Values:        []int{5, 3, 5},
		Burned:        []bool{false, true, false},
		Locked:        &locked,
		RolledAllCrit: true,
		KarmaUsed:     true,
		Seed:          42,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := store.PutRoll(context.Background(), input); err != nil {
		t.Fatalf("put roll: %v", err)
	}

	got, err := store.GetRoll(context.Background(), "roll-1")
	if err != nil {
		t.Fatalf("get roll: %v", err)
	}
	if len(got.Values) != 3 || got.Values[0] != 5 || got.Values[1] != 3 || got.Values[2] != 5 {
		t.Fatalf("values = %v, want %v", got.Values, input.Values)
	}
	if len(got.Burned) != 3 || !got.Burned[1] || got.Burned[0] {
		t.Fatalf("burned = %v, want %v", got.Burned, input.Burned)
	}
	if got.Locked == nil || *got.Locked != 2 {
		t.Fatalf("locked = %v, want 2", got.Locked)
	}
	if !got.RolledAllCrit || !got.KarmaUsed || got.Confirmed {
		t.Fatalf("flags = all_crit:%v karma:%v confirmed:%v", got.RolledAllCrit, got.KarmaUsed, got.Confirmed)
	}
	if got.Seed != 42 {
		t.Fatalf("seed = %d, want 42", got.Seed)
	}
}

func TestPutRollUpdatesMutableFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)

	input := storage.RollRecord{
		ID:          "roll-1",
		CharacterID: "char-1",
		Keyword:     "default",
		Mode:        "kh",
		Values:      []int{4},
		Seed:        7,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.PutRoll(context.Background(), input); err != nil {
		t.Fatalf("put roll: %v", err)
	}
	input.Values = []int{4, 6}
	input.Confirmed = true
	input.Keyword = "brutal"
	if err := store.PutRoll(context.Background(), input); err != nil {
		t.Fatalf("update roll: %v", err)
	}

	got, err := store.GetRoll(context.Background(), "roll-1")
	if err != nil {
		t.Fatalf("get roll: %v", err)
	}
	if len(got.Values) != 2 || !got.Confirmed {
		t.Fatalf("roll = %+v, want two values and confirmed", got)
	}
	if got.Keyword != "default" {
		t.Fatalf("keyword = %q, want immutable %q", got.Keyword, "default")
	}
	if got.Locked != nil {
		t.Fatalf("locked = %v, want nil", *got.Locked)
	}
}

func TestGetRollNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	_, err := store.GetRoll(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get roll error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestWithinTxCommits(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)
	putResource(t, store, "char-1", 0, resource.New("res-1", "Luck"), now)

	err := store.WithinTx(context.Background(), func(tx storage.Store) error {
		return tx.UpdateResourceValues(context.Background(), "char-1", map[string]int{"res-1": 9})
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}
	if got := resourceValue(t, store, "char-1", "res-1"); got != 9 {
		t.Fatalf("value = %d, want 9", got)
	}
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	now := time.Date(2026, time.March, 3, 10, 0, 0, 0, time.UTC)
	putCharacter(t, store, "char-1", now)
	res := resource.New("res-1", "Luck")
	res.Value = 3
	putResource(t, store, "char-1", 0, res, now)

	boom := errors.New("boom")
	err := store.WithinTx(context.Background(), func(tx storage.Store) error {
		if err := tx.UpdateResourceValues(context.Background(), "char-1", map[string]int{"res-1": 0}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("within tx error = %v, want %v", err, boom)
	}
	if got := resourceValue(t, store, "char-1", "res-1"); got != 3 {
		t.Fatalf("value = %d, want 3 after rollback", got)
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetCharacter(ctx, "char-1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("get character error = %v, want %v", err, context.Canceled)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sheet.sqlite")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func putCharacter(t *testing.T, store *Store, id string, now time.Time) {
	t.Helper()
	err := store.PutCharacter(context.Background(), storage.CharacterRecord{
		ID:        id,
		Name:      "Ada",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("put character: %v", err)
	}
}

func putResource(t *testing.T, store *Store, characterID string, position int, res resource.Resource, now time.Time) {
	t.Helper()
	err := store.PutResource(context.Background(), storage.ResourceRecord{
		CharacterID: characterID,
		Position:    position,
		Resource:    res,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("put resource: %v", err)
	}
}

func resourceValue(t *testing.T, store *Store, characterID, resourceID string) int {
	t.Helper()
	records, err := store.ListResources(context.Background(), characterID)
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	for _, rec := range records {
		if rec.Resource.ID == resourceID {
			return rec.Resource.Value
		}
	}
	t.Fatalf("resource %s not found", resourceID)
	return 0
}

func TestNewWithDBAppliesBind(t *testing.T) {
	t.Parallel()

	base := openTempStore(t)
	var bound int
	store := NewWithDB(base.DB(), WithBind(func(query string) string {
		bound++
		return query
	}))

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := store.PutCharacter(context.Background(), storage.CharacterRecord{ID: "char-bind", Name: "Bind", CreatedAt: now, UpdatedAt: now}); err != nil {
		t.Fatalf("put character: %v", err)
	}
	err := store.WithinTx(context.Background(), func(tx storage.Store) error {
		_, err := tx.GetCharacter(context.Background(), "char-bind")
		return err
	})
	if err != nil {
		t.Fatalf("within tx: %v", err)
	}
	if bound != 2 {
		t.Fatalf("bound queries = %d, want 2", bound)
	}
}
