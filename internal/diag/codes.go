package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                Code = 1000
	LexUnknownChar         Code = 1001
	LexUnterminatedString  Code = 1002
	LexUnterminatedChar    Code = 1003
	LexUnterminatedComment Code = 1004
	LexBadNumber           Code = 1005

	// Syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectIdent      Code = 2002
	SynExpectSemicolon  Code = 2003
	SynUnclosedBrace    Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedGenerics Code = 2006
	SynExpectClassBody  Code = 2007
	SynExpectMember     Code = 2008
	SynExpectType       Code = 2009

	// Migration
	MigInfo            Code = 3000
	MigSynthesisFailed Code = 3001
	MigTemplateUnbound Code = 3002
)

// ID returns the stable textual identifier of the code, used in reports.
func (c Code) ID() string {
	return fmt.Sprintf("RL%04d", uint16(c))
}
