package docstore_test

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/printshop/docstore/docstore"
	"github.com/printshop/docstore/docstore/storage"
	"github.com/printshop/docstore/types"
)

func itemFields() []types.FieldSpec {
	return []types.FieldSpec{
		{Name: "_id", Type: types.String, DefaultKind: types.DefaultGenerated, Generate: docstore.NewID},
		{Name: "name", Type: types.String, Required: true},
		{Name: "likes", Type: types.Number},
		{Name: "status", Type: types.String, Enum: []string{"NEW", "USED"}, Default: "NEW", DefaultKind: types.DefaultLiteral},
	}
}

func newItemStore(t *testing.T) (*docstore.Store, *docstore.Collection) {
	t.Helper()
	store, err := docstore.New("")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	col, err := store.Define("items", itemFields())
	if err != nil {
		t.Fatalf("failed to define items: %v", err)
	}
	return store, col
}

func TestDefine(t *testing.T) {
	store, _ := newItemStore(t)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := store.Define("items", itemFields())
		var derr *types.DuplicateSchemaError
		if !errors.As(err, &derr) {
			t.Fatalf("expected DuplicateSchemaError, got %v", err)
		}
	})

	t.Run("invalid specs", func(t *testing.T) {
		_, err := store.Define("broken", nil)
		if err == nil {
			t.Fatal("expected error for empty field set")
		}
	})

	t.Run("collection lookup", func(t *testing.T) {
		if _, ok := store.Collection("items"); !ok {
			t.Error("expected items collection to exist")
		}
		if _, ok := store.Collection("nope"); ok {
			t.Error("expected missing collection lookup to fail")
		}
	})
}

func TestCreateAndGet(t *testing.T) {
	_, col := newItemStore(t)

	created, err := col.Create(types.Document{"name": "camera", "likes": 3})
	if err != nil {
		t.Fatalf("failed to create: %v", err)
	}
	if created.ID() == "" {
		t.Fatal("expected a generated identifier")
	}
	if created["status"] != "NEW" {
		t.Errorf("expected default status NEW, got %v", created["status"])
	}

	got, err := col.Get(created.ID())
	if err != nil {
		t.Fatalf("failed to get: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("get differs from create result (-want +got):\n%s", diff)
	}

	// Mutating the returned document must not reach the store.
	got["name"] = "changed"
	again, _ := col.Get(created.ID())
	if again["name"] != "camera" {
		t.Error("mutation of a returned document leaked into the store")
	}
}

func TestCreateErrors(t *testing.T) {
	_, col := newItemStore(t)

	t.Run("validation failure", func(t *testing.T) {
		_, err := col.Create(types.Document{"likes": 1})
		var verr *types.ValidationError
		if !errors.As(err, &verr) || verr.Field != "name" {
			t.Fatalf("expected ValidationError on name, got %v", err)
		}
		if col.Count() != 0 {
			t.Error("failed create must not insert")
		}
	})

	t.Run("duplicate identifier", func(t *testing.T) {
		if _, err := col.Create(types.Document{"_id": "i1", "name": "a"}); err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		_, err := col.Create(types.Document{"_id": "i1", "name": "b"})
		var derr *types.DuplicateKeyError
		if !errors.As(err, &derr) || derr.ID != "i1" {
			t.Fatalf("expected DuplicateKeyError for i1, got %v", err)
		}
	})

	t.Run("unknown fields are dropped", func(t *testing.T) {
		doc, err := col.Create(types.Document{"name": "c", "bogus": true})
		if err != nil {
			t.Fatalf("failed to create: %v", err)
		}
		if _, present := doc["bogus"]; present {
			t.Error("unrecognized field should have been dropped")
		}
	})
}

func TestEdit(t *testing.T) {
	_, col := newItemStore(t)
	if _, err := col.Create(types.Document{"_id": "i1", "name": "camera", "likes": 3}); err != nil {
		t.Fatal(err)
	}

	t.Run("overwrites named fields only", func(t *testing.T) {
		updated, err := col.Edit("i1", types.Document{"likes": 9})
		if err != nil {
			t.Fatalf("failed to edit: %v", err)
		}
		if updated["likes"] != 9 || updated["name"] != "camera" {
			t.Errorf("unexpected document after edit: %v", updated)
		}
	})

	t.Run("empty changes is a no-op", func(t *testing.T) {
		before, _ := col.Get("i1")
		updated, err := col.Edit("i1", types.Document{})
		if err != nil {
			t.Fatalf("failed to edit: %v", err)
		}
		if diff := cmp.Diff(before, updated); diff != "" {
			t.Errorf("empty edit changed the document (-want +got):\n%s", diff)
		}
	})

	t.Run("identifier is immutable", func(t *testing.T) {
		_, err := col.Edit("i1", types.Document{"_id": "i2"})
		var verr *types.ValidationError
		if !errors.As(err, &verr) || verr.Field != "_id" {
			t.Fatalf("expected ValidationError on _id, got %v", err)
		}
		// Restating the current identifier is harmless.
		if _, err := col.Edit("i1", types.Document{"_id": "i1", "likes": 1}); err != nil {
			t.Fatalf("failed to edit with matching identifier: %v", err)
		}
	})

	t.Run("validation failure leaves the stored document intact", func(t *testing.T) {
		before, _ := col.Get("i1")
		_, err := col.Edit("i1", types.Document{"status": "BROKEN"})
		var verr *types.ValidationError
		if !errors.As(err, &verr) || verr.Field != "status" {
			t.Fatalf("expected ValidationError on status, got %v", err)
		}
		after, _ := col.Get("i1")
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("failed edit changed the document (-want +got):\n%s", diff)
		}
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := col.Edit("nope", types.Document{"likes": 1})
		var nerr *types.NotFoundError
		if !errors.As(err, &nerr) || nerr.ID != "nope" {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
	})
}

func TestDestroy(t *testing.T) {
	_, col := newItemStore(t)
	if _, err := col.Create(types.Document{"_id": "i1", "name": "camera"}); err != nil {
		t.Fatal(err)
	}

	if err := col.Destroy("i1"); err != nil {
		t.Fatalf("failed to destroy: %v", err)
	}

	_, err := col.Get("i1")
	var nerr *types.NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError after destroy, got %v", err)
	}

	if err := col.Destroy("i1"); !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError on second destroy, got %v", err)
	}
}

func TestAllIteratesAscending(t *testing.T) {
	_, col := newItemStore(t)
	for _, id := range []string{"c", "a", "b"} {
		if _, err := col.Create(types.Document{"_id": id, "name": id}); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	for doc := range col.All() {
		got = append(got, doc.ID())
	}
	if want := []string{"a", "b", "c"}; !cmp.Equal(want, got) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestListDefaultsToAscendingIdentifiers(t *testing.T) {
	_, col := newItemStore(t)
	for _, id := range []string{"b", "c", "a"} {
		if _, err := col.Create(types.Document{"_id": id, "name": id}); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := col.List(types.NewListOptions())
	if err != nil {
		t.Fatalf("failed to list: %v", err)
	}
	var got []string
	for _, doc := range docs {
		got = append(got, doc.ID())
	}
	if want := []string{"a", "b", "c"}; !cmp.Equal(want, got) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPersistenceAcrossStores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.json")

	first, err := docstore.New(path)
	if err != nil {
		t.Fatal(err)
	}
	col, err := first.Define("items", itemFields())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := col.Create(types.Document{"_id": "i1", "name": "camera", "likes": 3}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := docstore.New(path)
	if err != nil {
		t.Fatalf("failed to reopen store: %v", err)
	}
	defer func() { _ = second.Close() }()

	reloaded, err := second.Define("items", itemFields())
	if err != nil {
		t.Fatal(err)
	}
	doc, err := reloaded.Get("i1")
	if err != nil {
		t.Fatalf("expected persisted document, got %v", err)
	}
	if doc["name"] != "camera" {
		t.Errorf("expected name camera, got %v", doc["name"])
	}
}

// Collections present in the file but not yet defined must survive a
// save cycle untouched.
func TestUndefinedCollectionsSurviveSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.json")

	first, err := docstore.New(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"items", "extras"} {
		col, err := first.Define(name, itemFields())
		if err != nil {
			t.Fatal(err)
		}
		if _, err := col.Create(types.Document{"_id": name + "-1", "name": name}); err != nil {
			t.Fatal(err)
		}
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen defining only one of the two, mutate, close.
	second, err := docstore.New(path)
	if err != nil {
		t.Fatal(err)
	}
	col, err := second.Define("items", itemFields())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := col.Create(types.Document{"_id": "i2", "name": "later"}); err != nil {
		t.Fatal(err)
	}
	if err := second.Close(); err != nil {
		t.Fatal(err)
	}

	third, err := docstore.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = third.Close() }()
	extras, err := third.Define("extras", itemFields())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := extras.Get("extras-1"); err != nil {
		t.Errorf("expected extras-1 to survive saves by the other collection, got %v", err)
	}
}

// failingStorage is an in-memory backend whose saves can be switched
// off to exercise rollback paths.
type failingStorage struct {
	mu       sync.Mutex
	failSave bool
}

func (f *failingStorage) Load() (*storage.StoreData, error) {
	return storage.NewStoreData(time.Time{}), nil
}

func (f *failingStorage) Save(data *storage.StoreData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("backend unavailable")
	}
	return nil
}

func (f *failingStorage) Close() error { return nil }

func (f *failingStorage) setFail(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave = fail
}

func TestMutationsRollBackOnSaveFailure(t *testing.T) {
	backend := &failingStorage{}
	store, err := docstore.New("ignored.json", docstore.WithStorage(backend))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	col, err := store.Define("items", itemFields())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := col.Create(types.Document{"_id": "i1", "name": "camera", "likes": 3}); err != nil {
		t.Fatal(err)
	}

	backend.setFail(true)

	t.Run("create", func(t *testing.T) {
		if _, err := col.Create(types.Document{"_id": "i2", "name": "mug"}); err == nil || !strings.Contains(err.Error(), "failed to save") {
			t.Fatalf("expected save failure, got %v", err)
		}
		if _, err := col.Get("i2"); err == nil {
			t.Error("failed create must not leave the document behind")
		}
	})

	t.Run("edit", func(t *testing.T) {
		if _, err := col.Edit("i1", types.Document{"likes": 99}); err == nil || !strings.Contains(err.Error(), "failed to save") {
			t.Fatalf("expected save failure, got %v", err)
		}
		doc, _ := col.Get("i1")
		if doc["likes"] != 3 {
			t.Errorf("failed edit must keep the old value, got %v", doc["likes"])
		}
	})

	t.Run("destroy", func(t *testing.T) {
		if err := col.Destroy("i1"); err == nil || !strings.Contains(err.Error(), "failed to save") {
			t.Fatalf("expected save failure, got %v", err)
		}
		if _, err := col.Get("i1"); err != nil {
			t.Errorf("failed destroy must keep the document, got %v", err)
		}
	})
}

func TestConcurrentCreates(t *testing.T) {
	_, col := newItemStore(t)

	const workers = 20
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := col.Create(types.Document{"name": "camera"}); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent create failed: %v", err)
	}
	if got := col.Count(); got != workers {
		t.Errorf("expected %d documents, got %d", workers, got)
	}
}
