package checkout

import (
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"strings"
	"testing"
	"time"
)

func newTestUploads(orderID string, storage *fakeStorage, backend *fakeBackend) (*UploadManager, *Store) {
	store := NewStore(entities.NewOrderData())
	m := NewUploadManager(store, NewOrderSession(orderID), storage, backend.UpdateOrderDocuments, 2, 1<<20, nil, nil)
	m.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return m, store
}

func TestUploadManager_AddFilesSuccess(t *testing.T) {
	storage := newFakeStorage()
	storage.gate = make(chan struct{})
	backend := newFakeBackend()
	m, store := newTestUploads("o-1", storage, backend)

	added := m.AddFiles(context.Background(), []FileUpload{
		{Name: "my diploma.pdf", MimeType: "application/pdf", Content: []byte("a")},
		{Name: "transcript.pdf", MimeType: "application/pdf", Content: []byte("bb")},
	})
	if len(added) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(added))
	}
	for _, d := range store.Snapshot().Documents {
		if d.Status != entities.DocumentStatusPending && d.Status != entities.DocumentStatusUploading {
			t.Fatalf("documents must be visible before the upload finishes, got %s", d.Status)
		}
	}

	close(storage.gate)
	m.Wait()

	docs := store.Snapshot().Documents
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	for _, d := range docs {
		if d.Status != entities.DocumentStatusSuccess || d.Path == "" || d.Progress == nil || *d.Progress != 100 {
			t.Fatalf("unexpected document: %+v", d)
		}
		if !strings.HasPrefix(d.Path, "o-1/1700000000000-") {
			t.Fatalf("key not namespaced by order: %s", d.Path)
		}
		if d.URL != "https://files.example.com/"+d.Path {
			t.Fatalf("unexpected url: %s", d.URL)
		}
	}
	if !strings.HasSuffix(docs[0].Path, "-my_diploma.pdf") {
		t.Fatalf("filename not sanitized: %s", docs[0].Path)
	}
	if len(backend.linked) != 2 {
		t.Fatalf("expected 2 linked paths, got %d", len(backend.linked))
	}
}

func TestUploadManager_UploadError(t *testing.T) {
	storage := newFakeStorage()
	storage.uploadErr = errors.New("s3 down")
	m, store := newTestUploads("o-1", storage, newFakeBackend())

	m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	m.Wait()

	d := store.Snapshot().Documents[0]
	if d.Status != entities.DocumentStatusError || d.Error == "" || d.Progress != nil {
		t.Fatalf("unexpected document: %+v", d)
	}
}

func TestUploadManager_LinkFailureDegradesToError(t *testing.T) {
	backend := newFakeBackend()
	backend.linkErr = errors.New("order table down")
	m, store := newTestUploads("o-1", newFakeStorage(), backend)

	m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	m.Wait()

	d := store.Snapshot().Documents[0]
	if d.Status != entities.DocumentStatusError || d.Error == "" {
		t.Fatalf("an unlinked document must end in error: %+v", d)
	}
	if d.Path == "" {
		t.Fatalf("the uploaded path is kept for cleanup")
	}
}

func TestUploadManager_TooLarge(t *testing.T) {
	storage := newFakeStorage()
	m, store := newTestUploads("o-1", storage, newFakeBackend())
	m.maxBytes = 1

	m.AddFiles(context.Background(), []FileUpload{{Name: "big.pdf", Content: []byte("abc")}})
	m.Wait()

	if d := store.Snapshot().Documents[0]; d.Status != entities.DocumentStatusError {
		t.Fatalf("expected error, got %+v", d)
	}
	if len(storage.uploaded) != 0 {
		t.Fatalf("oversized file must not be uploaded")
	}
}

func TestUploadManager_TempNamespaceWithoutOrder(t *testing.T) {
	backend := newFakeBackend()
	m, store := newTestUploads("", newFakeStorage(), backend)

	m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	m.Wait()

	d := store.Snapshot().Documents[0]
	if d.Status != entities.DocumentStatusSuccess || !strings.HasPrefix(d.Path, "temp-") {
		t.Fatalf("unexpected document: %+v", d)
	}
	if len(backend.linked) != 0 {
		t.Fatalf("nothing to link without an order")
	}
}

func TestUploadManager_RemoveDocument(t *testing.T) {
	storage := newFakeStorage()
	storage.removeErr = errors.New("forbidden")
	m, store := newTestUploads("o-1", storage, newFakeBackend())

	added := m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	m.Wait()
	path := store.Snapshot().Documents[0].Path

	if err := m.RemoveDocument(context.Background(), added[0].ID); err != nil {
		t.Fatalf("remote delete failures must not surface: %v", err)
	}
	if len(store.Snapshot().Documents) != 0 {
		t.Fatalf("document must be removed locally")
	}
	if len(storage.removed) != 1 || storage.removed[0] != path {
		t.Fatalf("expected remote delete of %s, got %v", path, storage.removed)
	}

	if err := m.RemoveDocument(context.Background(), "missing"); !errors.Is(err, ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestUploadManager_RemoveFailedDocumentSkipsRemote(t *testing.T) {
	storage := newFakeStorage()
	storage.uploadErr = errors.New("down")
	m, store := newTestUploads("o-1", storage, newFakeBackend())

	added := m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	m.Wait()

	if err := m.RemoveDocument(context.Background(), added[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(storage.removed) != 0 || len(store.Snapshot().Documents) != 0 {
		t.Fatalf("failed uploads have no remote object to delete")
	}
}

func TestUploadManager_RemovedWhileUploading(t *testing.T) {
	storage := newFakeStorage()
	storage.gate = make(chan struct{})
	backend := newFakeBackend()
	m, store := newTestUploads("o-1", storage, backend)

	added := m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	if err := m.RemoveDocument(context.Background(), added[0].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(storage.gate)
	m.Wait()

	if len(store.Snapshot().Documents) != 0 {
		t.Fatalf("removed document must not come back")
	}
	if len(backend.linked) != 0 {
		t.Fatalf("removed document must not be linked to the order, got %v", backend.linked)
	}
	storage.mu.Lock()
	defer storage.mu.Unlock()
	if len(storage.removed) != len(storage.uploaded) {
		t.Fatalf("uploaded objects of removed documents must be deleted: uploaded=%d removed=%v", len(storage.uploaded), storage.removed)
	}
	for _, path := range storage.removed {
		if _, ok := storage.uploaded[path]; !ok {
			t.Fatalf("unexpected delete of %s", path)
		}
	}
}

func TestUploadManager_LinkPendingOnceOrderExists(t *testing.T) {
	backend := newFakeBackend()
	m, store := newTestUploads("", newFakeStorage(), backend)

	added := m.AddFiles(context.Background(), []FileUpload{
		{Name: "a.pdf", Content: []byte("a")},
		{Name: "b.pdf", Content: []byte("b")},
	})
	m.Wait()
	if err := m.RemoveDocument(context.Background(), added[1].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m.LinkPending(context.Background())
	if len(backend.linked) != 0 {
		t.Fatalf("nothing can be linked before the order exists")
	}

	m.session.Set("o-9")
	m.LinkPending(context.Background())

	docs := store.Snapshot().Documents
	if len(docs) != 1 || docs[0].Status != entities.DocumentStatusSuccess {
		t.Fatalf("unexpected documents: %+v", docs)
	}
	if len(backend.linked) != 1 || backend.linked[0] != docs[0].Path {
		t.Fatalf("expected %s to be linked, got %v", docs[0].Path, backend.linked)
	}

	m.LinkPending(context.Background())
	if len(backend.linked) != 1 {
		t.Fatalf("documents are linked once, got %v", backend.linked)
	}
}

func TestUploadManager_LinkPendingFailure(t *testing.T) {
	backend := newFakeBackend()
	m, store := newTestUploads("", newFakeStorage(), backend)

	m.AddFiles(context.Background(), []FileUpload{{Name: "a.pdf", Content: []byte("a")}})
	m.Wait()

	backend.linkErr = errors.New("order table down")
	m.session.Set("o-9")
	m.LinkPending(context.Background())

	if d := store.Snapshot().Documents[0]; d.Status != entities.DocumentStatusError || d.Error == "" {
		t.Fatalf("an unlinked document must end in error: %+v", d)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"my diploma.pdf":        "my_diploma.pdf",
		"../../etc/passwd":      "passwd",
		"..hidden":              "hidden",
		"résumé  final (1).pdf": "r_sum_final_1_.pdf",
		"   ":                   "file",
		`C:\docs\a b.png`:       "a_b.png",
	}
	for in, want := range cases {
		if got := SanitizeFilename(in); got != want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
