package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2002
	SynUnclosedBrace      Code = 2003
	SynUnclosedBracket    Code = 2004
	SynExpectSemicolon    Code = 2005
	SynUnexpectedTopLevel Code = 2006
	SynExpectIdentifier   Code = 2007
	SynExpectModuleSeg    Code = 2008
	SynExpectIdentAfterAs Code = 2009
	SynExpectType         Code = 2010
	SynExpectExpression   Code = 2011
	SynExpectColon        Code = 2012
	SynExpectEquals       Code = 2013
	SynExpectBlock        Code = 2014
	SynTooManyErrors      Code = 2015

	// Ошибки I/O
	IOLoadFileError Code = 4001

	// Ошибки проекта / графа импортов
	ProjInfo          Code = 5000
	ProjMissingModule Code = 5002
	ProjSelfImport    Code = 5003
	ProjImportCycle   Code = 5004
	ProjInvalidPath   Code = 5005
	ProjManifest      Code = 5006
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedBracket:          "Unclosed bracket",
	SynExpectSemicolon:          "Missing semicolon",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectModuleSeg:          "Expected module segment",
	SynExpectIdentAfterAs:       "Expected identifier after 'as'",
	SynExpectType:               "Expected type",
	SynExpectExpression:         "Expected expression",
	SynExpectColon:              "Expected ':'",
	SynExpectEquals:             "Expected '='",
	SynExpectBlock:              "Expected block",
	SynTooManyErrors:            "Too many syntax errors",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjMissingModule:           "Missing module",
	ProjSelfImport:              "Module imports itself",
	ProjImportCycle:             "Import cycle detected",
	ProjInvalidPath:             "Invalid module path",
	ProjManifest:                "Invalid project manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
