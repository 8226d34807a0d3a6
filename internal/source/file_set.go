package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet владеет содержимым всех загруженных файлов и переводит Span в
// строку/колонку. Add не потокобезопасен; после загрузки набор можно
// читать из многих горутин.
type FileSet struct {
	files   []File
	latest  map[string]FileID // нормализованный путь -> последняя версия
	baseDir string
}

func NewFileSet() *FileSet { return NewFileSetWithBase("") }

// NewFileSetWithBase задаёт каталог, относительно которого печатаются пути.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{latest: make(map[string]FileID), baseDir: baseDir}
}

func (fileSet *FileSet) SetBaseDir(dir string) { fileSet.baseDir = dir }

// BaseDir - заданный каталог или текущий рабочий.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func (fileSet *FileSet) Len() int { return len(fileSet.files) }

// Add регистрирует уже нормализованное содержимое. Повторный путь получает
// новый FileID; прежняя версия остаётся доступной по старому ID.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	id, clean := FileID(n), normalizePath(path)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    clean,
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	fileSet.latest[clean] = id
	return id
}

// Load читает файл с диска, срезает BOM и приводит \r\n к \n.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var flags FileFlags
	content, bom := removeBOM(raw)
	if bom {
		flags |= FileHadBOM
	}
	content, crlf := normalizeCRLF(content)
	if crlf {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (tests, stdin) flagged FileVirtual.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown id.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.latest[normalizePath(path)]
	return id, ok
}

// Resolve переводит оба конца span; для неизвестного файла - нули.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	if f == nil {
		return LineCol{}, LineCol{}
	}
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

// Text - байты под span, обрезанные по границам файла.
func (fileSet *FileSet) Text(span Span) string {
	if f := fileSet.Get(span.File); f != nil {
		return f.Slice(span.Start, span.End)
	}
	return ""
}

func (f *File) Slice(start, end uint32) string {
	n := uint32(len(f.Content)) // #nosec G115 -- проверено в Add
	end = min(end, n)
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine возвращает строку lineNum (1-based) без '\n'; "" за пределами файла.
func (f *File) GetLine(lineNum uint32) string {
	n := uint32(len(f.LineIdx)) // #nosec G115 -- строк не больше байт, а байты проверены в Add
	if lineNum == 0 || lineNum > n+1 {
		return ""
	}
	var start uint32
	if lineNum > 1 {
		start = f.LineIdx[lineNum-2] + 1
	}
	end := uint32(len(f.Content)) // #nosec G115 -- проверено в Add
	if lineNum <= n {
		end = f.LineIdx[lineNum-1]
	}
	return string(f.Content[start:end])
}

// FormatPath печатает путь в режиме absolute, relative (к baseDir или
// рабочему каталогу), basename или auto: короткие и относительные пути
// как есть, длинные абсолютные - basename.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		return absSlash(f.Path)
	case "relative":
		if baseDir == "" {
			baseDir, _ = os.Getwd()
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			if rel, err := filepath.Rel(baseDir, abs); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	case "basename":
		return filepath.Base(f.Path)
	case "auto":
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

func absSlash(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(abs)
}
