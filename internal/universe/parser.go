package universe

import (
	"fmt"

	"github.com/funvibe/castcheck/internal/typesystem"
)

// ParseType builds a type from an expression like "Map<in String, List<*>>?".
// Inside scope, the names of scope's type parameters resolve to those
// parameters; every other name is a classifier ID.
func (u *Universe) ParseType(expr string, scope *typesystem.Classifier) (typesystem.Type, error) {
	p := &parser{u: u, scope: scope, input: expr, l: newLexer(expr)}
	p.nextToken()
	p.nextToken()

	t, err := p.parseType()
	if err != nil {
		return typesystem.Type{}, err
	}
	if p.curToken.Type != tokEOF {
		return typesystem.Type{}, p.errorf("unexpected %s after type", p.curToken.Type)
	}
	if err := typesystem.CheckArity(t); err != nil {
		return typesystem.Type{}, err
	}
	return t, nil
}

type parser struct {
	u     *Universe
	scope *typesystem.Classifier
	input string
	l     *lexer

	curToken  token
	peekToken token
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Input: p.input, Pos: p.curToken.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tt tokenType) error {
	if p.curToken.Type != tt {
		return p.errorf("expected %s, got %s", tt, p.curToken.Type)
	}
	p.nextToken()
	return nil
}

// type := name ('<' arg (',' arg)* '>')? '?'?
func (p *parser) parseType() (typesystem.Type, error) {
	if p.curToken.Type != tokIdent {
		return typesystem.Type{}, p.errorf("expected type name, got %s", p.curToken.Type)
	}
	c, err := p.resolve(p.curToken.Literal)
	if err != nil {
		return typesystem.Type{}, err
	}
	p.nextToken()

	t := typesystem.Type{Constructor: c}
	if p.curToken.Type == tokLT {
		p.nextToken()
		for {
			arg, err := p.parseArgument()
			if err != nil {
				return typesystem.Type{}, err
			}
			t.Args = append(t.Args, arg)
			if p.curToken.Type != tokComma {
				break
			}
			p.nextToken()
		}
		if err := p.expect(tokGT); err != nil {
			return typesystem.Type{}, err
		}
	}

	if p.curToken.Type == tokQuestion {
		t.Nullable = true
		p.nextToken()
	}
	return t, nil
}

// arg := '*' | ('in' | 'out')? type
func (p *parser) parseArgument() (typesystem.Projection, error) {
	if p.curToken.Type == tokStar {
		p.nextToken()
		return typesystem.StarProjection(), nil
	}

	variance := typesystem.Invariant
	if p.curToken.Type == tokIdent && p.peekToken.Type == tokIdent {
		v, ok := typesystem.ParseVariance(p.curToken.Literal)
		if !ok || v == typesystem.Invariant {
			return typesystem.Projection{}, p.errorf("unknown variance %q", p.curToken.Literal)
		}
		variance = v
		p.nextToken()
	}

	t, err := p.parseType()
	if err != nil {
		return typesystem.Projection{}, err
	}
	return typesystem.NewProjection(variance, t), nil
}

func (p *parser) resolve(name string) (*typesystem.Classifier, error) {
	if p.scope != nil {
		for _, param := range p.scope.Params {
			if param.Name == name {
				return param.Symbol(), nil
			}
		}
	}
	return p.u.Resolve(name)
}
