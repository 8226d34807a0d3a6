// Package fuzztests houses Go fuzz harnesses for the checking pipeline
// (source -> lexer -> call-site extractor -> format scanner -> validator).
// The goal is to guard against panics and out-of-range spans on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через лексер, сканер
// форматной строки и весь driver.AnalyzeSource.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
