package source

// FileID - индекс файла в FileSet в порядке добавления.
type FileID uint32

// FileFlags - что загрузчик сделал с содержимым.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // из памяти: тесты, stdin
	FileHadBOM                               // UTF-8 BOM срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File - одна единица трансляции или заголовок после нормализации.
// LineIdx хранит смещения всех '\n', Hash - sha256 нормализованного содержимого.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol - 1-based позиция; Col считается в байтах.
type LineCol struct {
	Line uint32
	Col  uint32
}
