package script

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer splits board configuration scripts into words. Commands end at
// a newline or semicolon; '#' starts a comment.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "EOL", Pattern: `[\n;]+`},
	{Name: "Whitespace", Pattern: `[ \t\r]+`},
	{Name: "Word", Pattern: `[^\s;#"]+`},
})

// Script is a parsed configuration script.
type Script struct {
	Commands []*Command `( EOL | @@ )*`
}

// Command is a single command line.
// Example: flash bank $_FLASHNAME ti_f28004x_serial 0x80000 0x40000 0 0 $_TARGETNAME COM7
type Command struct {
	Pos  lexer.Position
	Name string `@Word`
	Args []*Arg `@@*`
}

// Arg is a bare or double-quoted word.
type Arg struct {
	Quoted *string `  @String`
	Bare   *string `| @Word`
}

// Value returns the word with quotes removed. Backslashes inside quotes are
// kept so Windows paths survive; only \" is unescaped.
func (a *Arg) Value() string {
	if a.Quoted != nil {
		q := *a.Quoted
		return strings.ReplaceAll(q[1:len(q)-1], `\"`, `"`)
	}
	if a.Bare != nil {
		return *a.Bare
	}
	return ""
}
