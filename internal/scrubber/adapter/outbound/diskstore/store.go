package diskstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/config"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/domain"
	"github.com/anthanhphan/go-image-scrubber/internal/scrubber/port"
	"github.com/anthanhphan/go-image-scrubber/pkg/resilience"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/spaolacci/murmur3"
)

const (
	tmpSuffix   = ".tmp"
	claimSuffix = ".take"
)

type indexKey struct {
	id string
	ns domain.Namespace
}

// DiskStore implements port.ObjectStore over a directory per namespace.
// Objects are published with a tmp-write + rename so partial writes are never
// visible. An in-memory checksum index is rebuilt from disk at startup; the
// directory listing, not the index, decides existence.
type DiskStore struct {
	root    string
	fsync   bool
	breaker *resilience.Breaker

	indexMu sync.RWMutex
	index   map[indexKey]uint32
}

// Ensure DiskStore implements port.ObjectStore.
var _ port.ObjectStore = (*DiskStore)(nil)

// NewDiskStore prepares namespace directories, discards crash leftovers and
// rebuilds the checksum index.
func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	root := filepath.Clean(cfg.DataDir)

	s := &DiskStore{
		root:  root,
		fsync: cfg.FSync,
		index: make(map[indexKey]uint32),
		breaker: resilience.NewBreaker(resilience.BreakerConfig{
			Name:             "diskstore",
			FailureThreshold: 5,
			Cooldown:         15 * time.Second,
		}),
	}

	for _, ns := range domain.Namespaces {
		if err := os.MkdirAll(s.namespaceDir(ns), 0750); err != nil {
			return nil, fmt.Errorf("failed to create namespace dir: %w", err)
		}
		if err := s.rebuildNamespace(ns); err != nil {
			return nil, fmt.Errorf("failed to rebuild %s index: %w", ns, err)
		}
	}

	s.indexMu.RLock()
	known := len(s.index)
	s.indexMu.RUnlock()
	logger.Infow("Disk store initialized", "root", root, "objects", known)

	return s, nil
}

func (s *DiskStore) namespaceDir(ns domain.Namespace) string {
	return filepath.Join(s.root, string(ns))
}

func (s *DiskStore) objectPath(id string, ns domain.Namespace, ext string) string {
	return filepath.Join(s.namespaceDir(ns), id+"."+ext)
}

// rebuildNamespace scans one directory, removing unfinished tmp files and
// abandoned claims, and rehashing every published object.
func (s *DiskStore) rebuildNamespace(ns domain.Namespace) error {
	entries, err := os.ReadDir(s.namespaceDir(ns))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		full := filepath.Join(s.namespaceDir(ns), name)

		if strings.HasSuffix(name, tmpSuffix) || strings.HasSuffix(name, claimSuffix) {
			logger.Warnw("Removing stale file from previous run", "file", name, "namespace", ns)
			_ = os.Remove(full)
			continue
		}

		id, _, ok := splitObjectName(name)
		if !ok {
			continue
		}

		sum, err := hashFile(full)
		if err != nil {
			logger.Warnw("Skipping unreadable object during index rebuild", "file", name, "error", err.Error())
			continue
		}
		s.index[indexKey{id: id, ns: ns}] = sum
	}

	return nil
}

// WriteObject streams reader to a tmp file while hashing, then atomically
// renames it into place. Concurrent writes for the same identifier are the
// caller's responsibility to serialize.
func (s *DiskStore) WriteObject(ctx context.Context, id string, ns domain.Namespace, ext string, reader io.Reader) (domain.StoredObject, error) {
	if _, _, err := s.locate(id, ns); err == nil {
		return domain.StoredObject{}, port.ErrDuplicateObject
	}

	path := s.objectPath(id, ns, ext)
	tmpPath := path + tmpSuffix

	var size int64
	var checksum uint32
	err := s.breaker.Execute(ctx, func(context.Context) error {
		n, sum, writeErr := s.writeFile(tmpPath, path, reader)
		size, checksum = n, sum
		return writeErr
	})
	if err != nil {
		if errors.Is(err, syscall.ENOSPC) {
			return domain.StoredObject{}, port.ErrStorageFull
		}
		return domain.StoredObject{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.StoredObject{}, fmt.Errorf("failed to stat written object: %w", err)
	}

	s.indexMu.Lock()
	s.index[indexKey{id: id, ns: ns}] = checksum
	s.indexMu.Unlock()

	return domain.StoredObject{
		ID:        id,
		Namespace: ns,
		Extension: ext,
		Size:      size,
		Checksum:  checksum,
		CreatedAt: info.ModTime(),
	}, nil
}

// sourceReader remembers read failures so they can be told apart from
// failures of the storage medium itself.
type sourceReader struct {
	r   io.Reader
	err error
}

func (sr *sourceReader) Read(p []byte) (int, error) {
	n, err := sr.r.Read(p)
	if err != nil && err != io.EOF {
		sr.err = err
	}
	return n, err
}

func (s *DiskStore) writeFile(tmpPath, finalPath string, reader io.Reader) (int64, uint32, error) {
	// G304: paths are built from validated identifiers inside the data dir.
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600) // #nosec G304
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create tmp file: %w", err)
	}

	hash := murmur3.New32()
	src := &sourceReader{r: reader}
	size, err := io.Copy(io.MultiWriter(f, hash), src)
	if err == nil && s.fsync {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpPath, finalPath)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		if src.err != nil {
			// The uploader's stream broke; the medium is fine, so the
			// breaker must not count this.
			return 0, 0, resilience.SkipFailure(fmt.Errorf("failed to read upload stream: %w", err))
		}
		return 0, 0, fmt.Errorf("failed to write object: %w", err)
	}

	return size, hash.Sum32(), nil
}

// ReadObject opens the object for reading without consuming it.
func (s *DiskStore) ReadObject(ctx context.Context, id string, ns domain.Namespace) (domain.StoredObject, io.ReadCloser, error) {
	obj, path, err := s.locate(id, ns)
	if err != nil {
		return domain.StoredObject{}, nil, err
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return domain.StoredObject{}, nil, port.ErrObjectNotFound
		}
		return domain.StoredObject{}, nil, fmt.Errorf("failed to open object: %w", err)
	}

	return obj, f, nil
}

// TakeObject claims the object by atomically renaming it out of its
// namespace. Exactly one of any concurrent callers wins the rename; the rest
// observe ErrObjectNotFound. Closing the reader discards the claimed bytes.
func (s *DiskStore) TakeObject(ctx context.Context, id string, ns domain.Namespace) (domain.StoredObject, io.ReadCloser, error) {
	obj, path, err := s.locate(id, ns)
	if err != nil {
		return domain.StoredObject{}, nil, err
	}

	claimPath := path + claimSuffix
	if err := os.Rename(path, claimPath); err != nil {
		if os.IsNotExist(err) {
			return domain.StoredObject{}, nil, port.ErrObjectNotFound
		}
		return domain.StoredObject{}, nil, fmt.Errorf("failed to claim object: %w", err)
	}

	s.indexMu.Lock()
	delete(s.index, indexKey{id: id, ns: ns})
	s.indexMu.Unlock()

	f, err := os.Open(claimPath) // #nosec G304
	if err != nil {
		_ = os.Remove(claimPath)
		return domain.StoredObject{}, nil, fmt.Errorf("failed to open claimed object: %w", err)
	}

	return obj, &claimedReader{file: f, path: claimPath}, nil
}

// claimedReader removes the claimed bytes when closed, on every exit path.
type claimedReader struct {
	file *os.File
	path string
}

func (r *claimedReader) Read(p []byte) (int, error) {
	return r.file.Read(p)
}

func (r *claimedReader) Close() error {
	err := r.file.Close()
	if removeErr := os.Remove(r.path); err == nil {
		err = removeErr
	}
	return err
}

// DeleteObject removes the object. Missing objects are success, so request
// cleanup and the sweeper can race freely.
func (s *DiskStore) DeleteObject(ctx context.Context, id string, ns domain.Namespace) error {
	_, path, err := s.locate(id, ns)
	if errors.Is(err, port.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	s.indexMu.Lock()
	delete(s.index, indexKey{id: id, ns: ns})
	s.indexMu.Unlock()

	return nil
}

// ListObjects re-enumerates the namespace's current disk state.
func (s *DiskStore) ListObjects(ctx context.Context, ns domain.Namespace) ([]domain.StoredObject, error) {
	entries, err := os.ReadDir(s.namespaceDir(ns))
	if err != nil {
		return nil, fmt.Errorf("failed to list namespace %s: %w", ns, err)
	}

	var objects []domain.StoredObject
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, tmpSuffix) || strings.HasSuffix(name, claimSuffix) {
			continue
		}
		id, ext, ok := splitObjectName(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Deleted between ReadDir and Info; the next pass catches up.
			continue
		}

		s.indexMu.RLock()
		checksum := s.index[indexKey{id: id, ns: ns}]
		s.indexMu.RUnlock()

		objects = append(objects, domain.StoredObject{
			ID:        id,
			Namespace: ns,
			Extension: ext,
			Size:      info.Size(),
			Checksum:  checksum,
			CreatedAt: info.ModTime(),
		})
	}

	return objects, nil
}

// locate resolves (id, ns) to its on-disk file by scanning the namespace
// directory. Extension is not part of the key, so the scan matches "id.*".
func (s *DiskStore) locate(id string, ns domain.Namespace) (domain.StoredObject, string, error) {
	entries, err := os.ReadDir(s.namespaceDir(ns))
	if err != nil {
		return domain.StoredObject{}, "", fmt.Errorf("failed to scan namespace %s: %w", ns, err)
	}

	prefix := id + "."
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if strings.HasSuffix(name, tmpSuffix) || strings.HasSuffix(name, claimSuffix) {
			continue
		}
		_, ext, ok := splitObjectName(name)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		s.indexMu.RLock()
		checksum := s.index[indexKey{id: id, ns: ns}]
		s.indexMu.RUnlock()

		obj := domain.StoredObject{
			ID:        id,
			Namespace: ns,
			Extension: ext,
			Size:      info.Size(),
			Checksum:  checksum,
			CreatedAt: info.ModTime(),
		}
		return obj, filepath.Join(s.namespaceDir(ns), name), nil
	}

	return domain.StoredObject{}, "", port.ErrObjectNotFound
}

// splitObjectName parses "<id>.<ext>" file names. Identifiers never contain
// dots, so the first dot is the separator.
func splitObjectName(name string) (id, ext string, ok bool) {
	id, ext, ok = strings.Cut(name, ".")
	if !ok || id == "" || ext == "" {
		return "", "", false
	}
	return id, ext, true
}

func hashFile(path string) (uint32, error) {
	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	hash := murmur3.New32()
	if _, err := io.Copy(hash, f); err != nil {
		return 0, err
	}
	return hash.Sum32(), nil
}
