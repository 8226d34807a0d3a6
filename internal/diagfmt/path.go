package diagfmt

import "cfmtlint/internal/source"

// formatPath - путь файла id в режиме mode; "" для неизвестного файла.
func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if f := fs.Get(id); f != nil {
		return f.FormatPath(mode.String(), fs.BaseDir())
	}
	return ""
}
