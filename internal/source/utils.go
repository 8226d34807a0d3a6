package source

import (
	"bytes"
	"path/filepath"
	"slices"
)

var (
	crlf    = []byte("\r\n")
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
)

// normalizeCRLF заменяет \r\n на \n; одиночный \r остаётся как есть.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, crlf) {
		return content, false
	}
	return bytes.ReplaceAll(content, crlf, []byte{'\n'}), true
}

func removeBOM(content []byte) ([]byte, bool) {
	return bytes.CutPrefix(content, utf8BOM)
}

// buildLineIndex собирает смещения всех '\n'.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	base := 0
	for {
		i := bytes.IndexByte(content[base:], '\n')
		if i < 0 {
			return out
		}
		base += i
		out = append(out, uint32(base))
		base++
	}
}

// toLineCol переводит смещение в строку/колонку бинпоиском по позициям '\n'.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// наибольший i, для которого lineIdx[i] < off
	i, _ := slices.BinarySearch(lineIdx, off)
	line := uint32(i) + 1
	var lineStart uint32
	if i > 0 {
		lineStart = lineIdx[i-1] + 1
	}
	return LineCol{Line: line, Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
