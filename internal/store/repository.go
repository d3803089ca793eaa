package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Tunables mirrors the non-secret settings the repository and its callers
// are parameterized on. The repository never reads these from a global;
// they are passed in explicitly at construction so tests can inject a
// temporary root and their own timeouts.
type Tunables struct {
	LockTimeoutMS   int
	LockRetryCount  int
	LockRetryDelayMS int
}

// DefaultTunables returns the documented defaults.
func DefaultTunables() Tunables {
	return Tunables{
		LockTimeoutMS:    300_000,
		LockRetryCount:   3,
		LockRetryDelayMS: 2000,
	}
}

// Repository is the sole gateway to persistence: every document on disk is
// read and written through it. It is constructed with an explicit root
// directory; there is no auto-detected repo root and no process-wide
// config.
type Repository struct {
	root     string
	tunables Tunables
	locks    *lockRegistry
}

// NewRepository opens (creating if necessary) a file-backed repository
// rooted at dir.
func NewRepository(dir string, tunables Tunables) (*Repository, error) {
	if dir == "" {
		return nil, newErr(KindValidationError, "store.NewRepository", "", fmt.Errorf("root directory is required"))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, newErr(KindInternal, "store.NewRepository", dir, err)
	}
	return &Repository{
		root:     dir,
		tunables: tunables,
		locks:    newLockRegistry(),
	}, nil
}

// Root returns the repository's root directory.
func (r *Repository) Root() string { return r.root }

var activityKeyRE = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}/[A-Za-z0-9_.:-]+$`)
var dateKeyRE = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
var memoryKeyRE = regexp.MustCompile(`^[A-Za-z0-9_.:-]+$`)

// relPath resolves a (kind, key) pair to a repo-relative path, without
// extension, following the stable on-disk layout.
func relPath(kind Kind, key string) (string, error) {
	switch kind {
	case KindProfile:
		return filepath.Join("athlete", "profile"), nil
	case KindSettings:
		return filepath.Join("config", "settings"), nil
	case KindSecrets:
		return filepath.Join("config", "secrets.local"), nil
	case KindWeeklySummary:
		return filepath.Join("metrics", "weekly_summary"), nil
	case KindPlan:
		return filepath.Join("plans", "current_plan"), nil
	case KindPlanMacro:
		return filepath.Join("plans", "current_plan_macro"), nil
	case KindActivity:
		if !activityKeyRE.MatchString(key) {
			return "", fmt.Errorf("activity key %q must be in YYYY-MM/<id> form", key)
		}
		return filepath.Join("activities", key), nil
	case KindDailyMetrics:
		if !dateKeyRE.MatchString(key) {
			return "", fmt.Errorf("daily metrics key %q must be a YYYY-MM-DD date", key)
		}
		return filepath.Join("metrics", "daily", key), nil
	case KindMemory:
		if !memoryKeyRE.MatchString(key) {
			return "", fmt.Errorf("memory key %q has invalid characters", key)
		}
		return filepath.Join("memories", key), nil
	default:
		return "", fmt.Errorf("unknown document kind %q", kind)
	}
}

func (r *Repository) absPath(kind Kind, key string) (string, error) {
	rel, err := relPath(kind, key)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.root, rel+".yaml"), nil
}

// Read decodes the document of the given kind and key. Returns a *Error
// with Kind=NotFound if the file does not exist, or Kind=ParseError if it
// cannot be decoded or fails its schema header check.
func Read[T any, PT interface {
	*T
	Document
}](r *Repository, kind Kind, key string) (PT, error) {
	path, err := r.absPath(kind, key)
	if err != nil {
		return nil, newErr(KindValidationError, "store.Read", key, err)
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, newErr(KindNotFound, "store.Read", path, fmt.Errorf("no such document"))
	}
	if err != nil {
		return nil, newErr(KindInternal, "store.Read", path, err)
	}

	var v T
	pv := PT(&v)
	if err := yaml.Unmarshal(data, pv); err != nil {
		return nil, newErr(KindParseError, "store.Read", path, err)
	}
	if err := checkHeader(pv.GetHeader(), string(kind)); err != nil {
		return nil, newErr(KindParseError, "store.Read", path, err)
	}
	return pv, nil
}

// Write serializes doc atomically: encode to a temp sibling file, fsync,
// rename over the target. On any failure the temp file is removed and the
// original is left intact. Write rejects
// documents that fail Validate() or whose header is missing, before the
// rename ever happens.
func Write[T any, PT interface {
	*T
	Document
}](r *Repository, kind Kind, key string, doc PT) error {
	if doc.GetHeader().SchemaType == "" {
		doc.SetHeader(NewHeader(string(kind)))
	}
	if doc.GetHeader().SchemaType != string(kind) {
		return newErr(KindValidationError, "store.Write", key, fmt.Errorf("schema_type %q does not match kind %q", doc.GetHeader().SchemaType, kind))
	}
	if err := doc.Validate(); err != nil {
		return newErr(KindValidationError, "store.Write", key, err)
	}

	path, err := r.absPath(kind, key)
	if err != nil {
		return newErr(KindValidationError, "store.Write", key, err)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return newErr(KindInternal, "store.Write", path, err)
	}

	return atomicWrite(path, data)
}

// atomicWrite writes data to path via a temp sibling file, fsync, and
// rename, so readers never observe a truncated document.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newErr(KindInternal, "store.atomicWrite", path, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return newErr(KindInternal, "store.atomicWrite", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return newErr(KindInternal, "store.atomicWrite", path, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return newErr(KindInternal, "store.atomicWrite", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return newErr(KindInternal, "store.atomicWrite", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return newErr(KindInternal, "store.atomicWrite", path, err)
	}
	return nil
}

// Update performs a read-modify-write of the document at (kind, key) under
// the per-(kind,key) advisory lock. If the document
// doesn't exist yet, fn receives a zero-valued, headerless document so
// callers can use Update for first-time creation.
func Update[T any, PT interface {
	*T
	Document
}](r *Repository, kind Kind, key string, fn func(PT) error) (PT, error) {
	rel, err := relPath(kind, key)
	if err != nil {
		return nil, newErr(KindValidationError, "store.Update", key, err)
	}
	lockBase := filepath.Join(r.root, rel)
	if err := os.MkdirAll(filepath.Dir(lockBase), 0o755); err != nil {
		return nil, newErr(KindInternal, "store.Update", lockBase, err)
	}

	unlock, err := r.locks.acquire(lockBase, r.tunables)
	if err != nil {
		return nil, err
	}
	defer unlock()

	doc, err := Read[T, PT](r, kind, key)
	if err != nil {
		var se *Error
		if !(asStoreError(err, &se) && se.Kind == KindNotFound) {
			return nil, err
		}
		var zero T
		doc = PT(&zero)
	}

	if err := fn(doc); err != nil {
		return nil, err
	}

	if err := Write[T, PT](r, kind, key, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func asStoreError(err error, target **Error) bool {
	se, ok := err.(*Error)
	if ok {
		*target = se
	}
	return ok
}

// List returns the ordered set of keys matching glob under the directory
// that the given kind resolves to. glob is matched against the file name
// (without the .yaml extension), e.g. "2026-*" for activities or "*" for
// everything.
func (r *Repository) List(kind Kind, glob string) ([]string, error) {
	var dir string
	var keyFromRel func(rel string) string

	switch kind {
	case KindActivity:
		dir = filepath.Join(r.root, "activities")
		keyFromRel = func(rel string) string { return rel }
	case KindDailyMetrics:
		dir = filepath.Join(r.root, "metrics", "daily")
		keyFromRel = func(rel string) string { return rel }
	case KindMemory:
		dir = filepath.Join(r.root, "memories")
		keyFromRel = func(rel string) string { return rel }
	default:
		return nil, newErr(KindValidationError, "store.List", string(kind), fmt.Errorf("kind %q is a singleton, not listable", kind))
	}

	var keys []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = strings.TrimSuffix(rel, ".yaml")
		key := keyFromRel(filepath.ToSlash(rel))
		if glob == "" || glob == "*" {
			keys = append(keys, key)
			return nil
		}
		matched, err := filepath.Match(glob, filepath.Base(key))
		if err != nil {
			return err
		}
		if matched {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, newErr(KindInternal, "store.List", dir, err)
	}
	sort.Strings(keys)
	return keys, nil
}
