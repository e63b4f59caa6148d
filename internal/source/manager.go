package source

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/unicode"
)

// ReadFunc reads a whole file. os.ReadFile is the default.
type ReadFunc func(path string) ([]byte, error)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithReadFunc replaces the function used to read files from disk.
func WithReadFunc(fn ReadFunc) ManagerOption {
	return func(m *Manager) {
		if fn != nil {
			m.read = fn
		}
	}
}

// Manager loads source files exactly once per canonical path and hands out
// FileIDs for them. Records are never evicted or replaced.
type Manager struct {
	mu    sync.RWMutex
	files   []*File           // FileID -> запись
	index   map[string]FileID // канонический путь -> FileID
	virtual map[string]FileID // имя виртуального файла -> FileID, отдельно от диска
	read    ReadFunc
	reads int
}

// NewManager creates an empty Manager.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		files: make([]*File, 0, 16),
		index:   make(map[string]FileID, 16),
		virtual: make(map[string]FileID),
		read:    os.ReadFile,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Canonicalize resolves relative segments and symlinks of path.
// The file must exist.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// Load returns the FileID for path, reading it from disk on first use.
// Two spellings of the same file share one FileID and one read.
func (m *Manager) Load(path string) (FileID, error) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return 0, &LoadError{Op: "canonicalize", Path: path, Err: err}
	}

	m.mu.RLock()
	id, ok := m.index[canonical]
	m.mu.RUnlock()
	if ok {
		return id, nil
	}

	// Чтение под эксклюзивной блокировкой: файл читается не более одного раза.
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.index[canonical]; ok {
		return id, nil
	}

	// #nosec G304 -- path is provided by the caller
	content, err := m.read(canonical)
	if err != nil {
		return 0, &LoadError{Op: "read", Path: canonical, Err: err}
	}
	m.reads++

	text, hadBOM, err := decodeUTF8(content)
	if err != nil {
		return 0, &LoadError{Op: "decode", Path: canonical, Err: err}
	}
	var flags FileFlags
	if hadBOM {
		flags |= FileHadBOM
	}
	return m.addLocked(canonical, text, flags), nil
}

// AddVirtual registers in-memory text under name. A name that is already
// registered as virtual keeps its original FileID and text. Virtual names
// live apart from loaded files: an absolute name equal to a file on disk
// gets its own FileID and never shadows that file.
func (m *Manager) AddVirtual(name, text string) FileID {
	key := virtualKey(name)
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.virtual[key]; ok {
		return id
	}
	id := m.addLocked(key, text, FileVirtual)
	m.virtual[key] = id
	return id
}

// virtualKey cleans name; for an absolute name the directory part is
// canonicalized when it exists, so imports resolve the way they would
// from a real file there.
func virtualKey(name string) string {
	key := filepath.Clean(name)
	if !filepath.IsAbs(key) {
		return key
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(key)); err == nil {
		return filepath.Join(dir, filepath.Base(key))
	}
	return key
}

func (m *Manager) addLocked(path, text string, flags FileFlags) FileID {
	next, err := safecast.Conv[uint32](len(m.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(next)
	m.files = append(m.files, &File{
		ID:      id,
		Path:    path,
		Text:    text,
		LineIdx: buildLineIndex(text),
		Hash:    sha256.Sum256([]byte(text)),
		Flags:   flags,
	})
	if flags&FileVirtual == 0 {
		m.index[path] = id
	}
	return id
}

// Lookup reports the FileID already assigned to path, without loading it.
// Files read from disk win over virtual files of the same name.
func (m *Manager) Lookup(path string) (FileID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if canonical, err := Canonicalize(path); err == nil {
		if id, ok := m.index[canonical]; ok {
			return id, true
		}
	}
	id, ok := m.virtual[virtualKey(path)]
	return id, ok
}

// File returns the record of id. It panics with *IdentityError for ids this
// Manager never issued.
func (m *Manager) File(id FileID) *File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.fileLocked(id)
}

func (m *Manager) fileLocked(id FileID) *File {
	if int(id) >= len(m.files) {
		panic(&IdentityError{Kind: "file", ID: uint64(id), Len: len(m.files)})
	}
	return m.files[id]
}

// SourceText returns the shared text of id.
func (m *Manager) SourceText(id FileID) string {
	return m.File(id).Text
}

// Path returns the canonical path recorded for id.
// Unknown ids report false instead of panicking so callers can probe.
func (m *Manager) Path(id FileID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if int(id) >= len(m.files) {
		return "", false
	}
	return m.files[id].Path, true
}

// Len returns the number of registered files.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}

// Files returns all FileIDs in allocation order.
func (m *Manager) Files() []FileID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]FileID, len(m.files))
	for i, f := range m.files {
		out[i] = f.ID
	}
	return out
}

// Reads returns how many files were actually read from disk.
func (m *Manager) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// Resolve converts a span into line and column positions.
func (m *Manager) Resolve(span Span) (start, end LineCol) {
	f := m.File(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeUTF8 validates content and strips a leading byte order mark.
func decodeUTF8(content []byte) (string, bool, error) {
	if !utf8.Valid(content) {
		return "", false, ErrInvalidUTF8
	}
	hadBOM := bytes.HasPrefix(content, utf8BOM)
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(content)
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrInvalidUTF8, err)
	}
	return string(out), hadBOM, nil
}
