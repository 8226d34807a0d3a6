package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexUnterminatedChar         Code = 1004
	LexTokenTooLong             Code = 1005

	// Проверка форматных строк printf
	FmtInfo         Code = 2000
	FmtFlag         Code = 2001
	FmtLength       Code = 2002
	FmtTypeMismatch Code = 2003
	FmtTypeWildcard Code = 2004
	FmtTypeNotExist Code = 2005
	FmtArgs         Code = 2006

	// I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002

	// Конфигурация
	CfgInfo Code = 5000

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexUnterminatedChar:         "Unterminated character constant",
		LexTokenTooLong:             "Token too long",
		FmtInfo:                     "Format string information",
		FmtFlag:                     "Flag not allowed for conversion",
		FmtLength:                   "Length modifier not allowed for conversion",
		FmtTypeMismatch:             "Argument type does not match conversion",
		FmtTypeWildcard:             "Wildcard width or precision argument is not int",
		FmtTypeNotExist:             "Unknown conversion specifier",
		FmtArgs:                     "Argument count does not match format",
		IOLoadFileError:             "Failed to load file",
		IOCacheError:                "Disk cache failure",
		CfgInfo:                     "Configuration information",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
