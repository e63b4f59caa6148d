package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is an export of session state for external tooling. It is
// never read back into a Database.
type Snapshot struct {
	Files       []FileSnapshot       `msgpack:"files"`
	Symbols     []string             `msgpack:"symbols"`
	Diagnostics []DiagnosticSnapshot `msgpack:"diagnostics"`
}

type FileSnapshot struct {
	ID      uint32   `msgpack:"id"`
	Path    string   `msgpack:"path"`
	SHA256  []byte   `msgpack:"sha256"`
	Virtual bool     `msgpack:"virtual,omitempty"`
	Parsed  bool     `msgpack:"parsed"`
	Nodes   int      `msgpack:"nodes,omitempty"`
	Items   int      `msgpack:"items,omitempty"`
	Imports []string `msgpack:"imports,omitempty"`
}

type DiagnosticSnapshot struct {
	Severity string `msgpack:"severity"`
	Code     string `msgpack:"code"`
	Message  string `msgpack:"message"`
	Path     string `msgpack:"path,omitempty"`
	Line     uint32 `msgpack:"line,omitempty"`
	Col      uint32 `msgpack:"col,omitempty"`
}

// Snapshot collects files, their parse summaries, interned strings and
// diagnostics. It does not trigger any parsing.
func (db *Database) Snapshot() Snapshot {
	var snap Snapshot
	for _, id := range db.sources.Files() {
		f := db.sources.File(id)
		fs := FileSnapshot{
			ID:      uint32(id),
			Path:    f.Path,
			SHA256:  f.Hash[:],
			Virtual: f.Virtual(),
		}
		if p, ok := db.cache.get(id); ok {
			fs.Parsed = true
			fs.Nodes = p.Tree.NodeCount()
			fs.Items = len(p.Tree.Module(p.Root).Items)
			for _, ref := range p.Tree.Imports(p.Root) {
				fs.Imports = append(fs.Imports, strings.Join(p.Tree.PathSegments(ref.Import.Path, db.strs), "::"))
			}
		}
		snap.Files = append(snap.Files, fs)
	}
	snap.Symbols = db.strs.Snapshot()

	for _, d := range db.bag.Items() {
		ds := DiagnosticSnapshot{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Message:  d.Message,
		}
		if path, ok := db.sources.Path(d.Primary.File); ok {
			start, _ := db.sources.Resolve(d.Primary)
			ds.Path, ds.Line, ds.Col = path, start.Line, start.Col
		}
		snap.Diagnostics = append(snap.Diagnostics, ds)
	}
	return snap
}

// EncodeSnapshot writes Snapshot as MessagePack.
func (db *Database) EncodeSnapshot(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(db.Snapshot()); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}
