package source

type (
	// FileID uniquely identifies a loaded source file within a Manager.
	FileID uint32 // последовательный, никогда не переиспользуется
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

// Extension is the fixed suffix of ny source files.
const Extension = ".ny"

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
)

// File captures metadata and content for a single source file.
type File struct {
	ID   FileID
	Path string // канонический путь (или очищенное имя для виртуальных файлов)
	// Text is shared between every holder of the record; strings are immutable,
	// so handing it out never copies the underlying bytes.
	Text    string
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Virtual reports whether the file was added from memory.
func (f *File) Virtual() bool {
	return f.Flags&FileVirtual != 0
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, bytes
}
