package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records what happened to a file's bytes on the way in.
type FileFlags uint8

const (
	// FileVirtual marks content that did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	FileStrippedBOM
	FileStrippedCRLF
)

// Normalized reports whether loading changed the bytes. Formatted output is
// always BOM-less with LF terminators, so such a file counts as changed even
// when the formatter leaves its content alone.
func (fl FileFlags) Normalized() bool {
	return fl&(FileStrippedBOM|FileStrippedCRLF) != 0
}

// File is one loaded test data file.
type File struct {
	ID      FileID
	Path    string
	Content []byte   // BOM and CRLF already stripped
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// FileSet manages a collection of source files.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	normalizedPath := normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fileSet.AddNormalized(path, content, 0), nil
}

// AddNormalized strips a BOM and CRLF line endings before adding content.
func (fileSet *FileSet) AddNormalized(path string, content []byte, flags FileFlags) FileID {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileStrippedBOM
	}
	if hadCRLF {
		flags |= FileStrippedCRLF
	}
	return fileSet.Add(path, content, flags)
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.AddNormalized(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByPath возвращает *File по пути, если был загружен в этот FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len reports how many files were added.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.files[span.File]
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// GetLine returns line lineNum (1-based) without its terminator.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 {
		return ""
	}
	n := len(f.LineIdx)
	idx := int(lineNum) - 1
	if idx > n {
		return ""
	}
	start := 0
	if idx > 0 {
		start = int(f.LineIdx[idx-1]) + 1
	}
	end := len(f.Content)
	if idx < n {
		end = int(f.LineIdx[idx])
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}
