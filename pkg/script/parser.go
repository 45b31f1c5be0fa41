package script

import (
	"io"
	"os"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// Parser parses configuration scripts.
type Parser struct {
	parser *participle.Parser[Script]
}

// NewParser creates a new script parser instance.
func NewParser() (*Parser, error) {
	parser, err := participle.Build[Script](
		participle.Lexer(ScriptLexer),
		participle.Elide("Comment", "Whitespace"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build parser")
	}
	return &Parser{parser: parser}, nil
}

// Parse parses a script from r. name is used in error positions.
func (p *Parser) Parse(name string, r io.Reader) (*Script, error) {
	s, err := p.parser.Parse(name, r)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	return s, nil
}

// ParseString parses a script held in a string.
func (p *Parser) ParseString(name, input string) (*Script, error) {
	s, err := p.parser.ParseString(name, input)
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	return s, nil
}

// ParseFile parses the script stored at filename.
func (p *Parser) ParseFile(filename string) (*Script, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()
	return p.Parse(filename, f)
}
