package checkout

import (
	"bytes"
	"context"
	"errors"
	"evaluation_orders/internal/domain/entities"
	"evaluation_orders/internal/infrastructure/logger"
	"evaluation_orders/internal/infrastructure/metrics"
	"evaluation_orders/internal/usecase/interfaces"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultUploadConcurrency = 3
	DefaultMaxUploadBytes    = 25 << 20
)

var ErrDocumentNotFound = errors.New("document not found")

// FileUpload is one file picked by the user, already read into memory.
type FileUpload struct {
	Name     string
	MimeType string
	Content  []byte
}

// DocumentLinker attaches an uploaded path to its order.
type DocumentLinker func(ctx context.Context, orderID string, path string) error

// UploadManager runs the upload lifecycle of every document of a checkout.
//
// Files upload concurrently; every change to the document list goes through
// Store.UpdateDocuments so two uploads finishing together cannot lose an
// update.
type UploadManager struct {
	store       *Store
	session     *OrderSession
	storage     interfaces.IObjectStorage
	link        DocumentLinker
	concurrency int
	maxBytes    int64
	tempID      string
	metrics     *metrics.Registry
	log         *zap.Logger
	now         func() time.Time

	inflight sync.WaitGroup

	// unlinked holds paths uploaded before the order existed, by document.
	pendingMu sync.Mutex
	unlinked  map[string]string
}

func NewUploadManager(
	store *Store,
	session *OrderSession,
	storage interfaces.IObjectStorage,
	link DocumentLinker,
	concurrency int,
	maxBytes int64,
	m *metrics.Registry,
	log *zap.Logger,
) *UploadManager {
	if concurrency <= 0 {
		concurrency = DefaultUploadConcurrency
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	return &UploadManager{
		store:       store,
		session:     session,
		storage:     storage,
		link:        link,
		concurrency: concurrency,
		maxBytes:    maxBytes,
		tempID:      uuid.NewString(),
		metrics:     m,
		log:         logger.OrNop(log),
		now:         time.Now,
		unlinked:    map[string]string{},
	}
}

// AddFiles appends a pending document per file and returns them at once.
// Uploads continue in the background after ctx is done.
func (m *UploadManager) AddFiles(ctx context.Context, files []FileUpload) []entities.DocumentState {
	if len(files) == 0 {
		return nil
	}
	added := make([]entities.DocumentState, 0, len(files))
	for _, f := range files {
		added = append(added, entities.NewPendingDocument(uuid.NewString(), f.Name, int64(len(f.Content)), f.MimeType))
	}
	m.store.UpdateDocuments(func(docs []entities.DocumentState) []entities.DocumentState {
		return append(docs, added...)
	})

	bg := context.WithoutCancel(ctx)
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()
		g := new(errgroup.Group)
		g.SetLimit(m.concurrency)
		for i := range added {
			doc, file := added[i], files[i]
			g.Go(func() error {
				m.upload(bg, doc, file)
				return nil
			})
		}
		_ = g.Wait()
	}()
	return added
}

// Wait blocks until every upload started so far has settled.
func (m *UploadManager) Wait() {
	m.inflight.Wait()
}

func (m *UploadManager) upload(ctx context.Context, doc entities.DocumentState, file FileUpload) {
	if int64(len(file.Content)) > m.maxBytes {
		m.fail(doc.ID, fmt.Sprintf("%s is larger than the %d MB limit.", doc.Name, m.maxBytes>>20))
		m.metrics.Upload("rejected")
		return
	}
	if !m.transition(doc.ID, entities.DocumentState.StartUpload) {
		m.metrics.Upload("cancelled")
		return
	}

	key := m.objectKey(doc.Name)
	path, err := m.storage.Upload(ctx, key, bytes.NewReader(file.Content), int64(len(file.Content)), file.MimeType)
	if err != nil {
		m.log.Warn("[checkout][upload] upload failed", zap.String("doc_id", doc.ID), zap.String("key", key), zap.Error(err))
		m.fail(doc.ID, fmt.Sprintf("Failed to upload %s. Please try again.", doc.Name))
		m.metrics.Upload("error")
		return
	}
	url := m.storage.PublicURL(path)
	if !m.transition(doc.ID, func(d entities.DocumentState) (entities.DocumentState, error) {
		return d.Succeed(path, url)
	}) {
		// Removed while uploading: the object is not referenced by anything.
		m.log.Info("[checkout][upload] document removed during upload", zap.String("doc_id", doc.ID), zap.String("path", path))
		if err := m.storage.Remove(ctx, path); err != nil {
			m.log.Warn("[checkout][upload] orphan delete failed", zap.String("doc_id", doc.ID), zap.String("path", path), zap.Error(err))
		}
		m.metrics.Upload("cancelled")
		return
	}

	if orderID := m.claimOrder(doc.ID, path); orderID != "" {
		m.linkDocument(ctx, orderID, doc.ID, doc.Name, path)
		return
	}
	m.metrics.Upload("success")
	m.log.Info("[checkout][upload] upload success, waiting for order", zap.String("doc_id", doc.ID), zap.String("path", path))
}

// claimOrder returns the order to link path to, or parks the path until
// LinkPending runs once the order exists.
func (m *UploadManager) claimOrder(docID, path string) string {
	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	orderID := m.session.OrderID()
	if orderID == "" {
		m.unlinked[docID] = path
	}
	return orderID
}

// LinkPending attaches the documents uploaded before the order existed.
// Call it after the order id is set on the session.
func (m *UploadManager) LinkPending(ctx context.Context) {
	m.pendingMu.Lock()
	orderID := m.session.OrderID()
	if orderID == "" {
		m.pendingMu.Unlock()
		return
	}
	pending := m.unlinked
	m.unlinked = map[string]string{}
	m.pendingMu.Unlock()

	for id, path := range pending {
		doc, ok := m.document(id)
		if !ok {
			continue
		}
		m.linkDocument(ctx, orderID, id, doc.Name, path)
	}
}

func (m *UploadManager) linkDocument(ctx context.Context, orderID, docID, name, path string) {
	if m.link != nil {
		if err := m.link(ctx, orderID, path); err != nil {
			m.log.Warn("[checkout][upload] link to order failed", zap.String("doc_id", docID), zap.String("order_id", orderID), zap.Error(err))
			m.fail(docID, fmt.Sprintf("%s was uploaded but could not be attached to your order. Please remove it and upload it again.", name))
			m.metrics.Upload("link_error")
			return
		}
	}
	m.metrics.Upload("success")
	m.log.Info("[checkout][upload] upload success", zap.String("doc_id", docID), zap.String("order_id", orderID), zap.String("path", path))
}

func (m *UploadManager) document(id string) (entities.DocumentState, bool) {
	for _, d := range m.store.Snapshot().Documents {
		if d.ID == id {
			return d, true
		}
	}
	return entities.DocumentState{}, false
}

func (m *UploadManager) fail(id, message string) {
	m.transition(id, func(d entities.DocumentState) (entities.DocumentState, error) {
		return d.Fail(message)
	})
}

// transition reports false when the document was removed meanwhile.
func (m *UploadManager) transition(id string, fn func(entities.DocumentState) (entities.DocumentState, error)) bool {
	found := false
	m.store.UpdateDocuments(func(docs []entities.DocumentState) []entities.DocumentState {
		for i := range docs {
			if docs[i].ID != id {
				continue
			}
			found = true
			next, err := fn(docs[i])
			if err != nil {
				m.log.Error("[checkout][upload] rejected document transition", zap.String("doc_id", id), zap.Error(err))
				return docs
			}
			docs[i] = next
			return docs
		}
		return docs
	})
	return found
}

// RemoveDocument drops the document locally, then deletes its remote object
// when it had been uploaded. Remote failures are only logged.
func (m *UploadManager) RemoveDocument(ctx context.Context, id string) error {
	var removed *entities.DocumentState
	m.store.UpdateDocuments(func(docs []entities.DocumentState) []entities.DocumentState {
		out := docs[:0]
		for _, d := range docs {
			if d.ID == id && removed == nil {
				removed = &d
				continue
			}
			out = append(out, d)
		}
		return out
	})
	if removed == nil {
		return ErrDocumentNotFound
	}
	m.pendingMu.Lock()
	delete(m.unlinked, id)
	m.pendingMu.Unlock()

	if removed.Status == entities.DocumentStatusSuccess && removed.Path != "" {
		if err := m.storage.Remove(ctx, removed.Path); err != nil {
			m.log.Warn("[checkout][upload] remote delete failed", zap.String("doc_id", id), zap.String("path", removed.Path), zap.Error(err))
		}
	}
	return nil
}

// objectKey namespaces by order id, or by a per-checkout temporary id
// before an order exists.
func (m *UploadManager) objectKey(name string) string {
	ns := m.session.OrderID()
	if ns == "" {
		ns = "temp-" + m.tempID
	}
	return fmt.Sprintf("%s/%d-%s-%s", ns, m.now().UnixMilli(), uuid.NewString()[:8], SanitizeFilename(name))
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	repeatedUnderscores = regexp.MustCompile(`_{2,}`)
)

// SanitizeFilename keeps a storage-safe base name.
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	name = unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
	name = repeatedUnderscores.ReplaceAllString(name, "_")
	name = strings.TrimLeft(name, ".")
	if name == "" || name == "_" {
		return "file"
	}
	return name
}
