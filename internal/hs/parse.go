package hs

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseType parses a Haskell type signature such as
//
//	a -> [a] -> [a]
//	(a, b) -> a
//	Maybe Int -> Int
//
// Lowercase names become generic variables (shared per name within
// one signature); uppercase names become constructors. The result is
// suitable for storing in a catalog entry and instantiating per
// block with Checker.Instantiate.
func ParseType(src string) (Type, error) {
	p := &typeParser{src: src, vars: map[string]*Var{}}
	t, err := p.parseArrow()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type typeParser struct {
	src    string
	pos    int
	nextID int
	vars   map[string]*Var
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("parse type %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

// parseArrow parses a chain of application types joined by ->, which
// associates to the right.
func (p *typeParser) parseArrow() (Type, error) {
	left, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], "->") {
		p.pos += 2
		right, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		return &Func{Arg: left, Res: right}, nil
	}
	return left, nil
}

// parseApp parses one or more atoms, folded into left-nested App.
func (p *typeParser) parseApp() (Type, error) {
	t, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		p.skipSpace()
		if !p.atomAhead() {
			return t, nil
		}
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		t = &App{Fn: t, Arg: arg}
	}
}

// atomAhead reports whether the next token can start an atom.
func (p *typeParser) atomAhead() bool {
	if p.pos >= len(p.src) {
		return false
	}
	c := rune(p.src[p.pos])
	return c == '(' || c == '[' || unicode.IsLetter(c)
}

func (p *typeParser) parseAtom() (Type, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of signature")
	}

	switch c := p.src[p.pos]; {
	case c == '[':
		p.pos++
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ']' {
			// Bare list constructor.
			p.pos++
			return &Con{Name: "[]"}, nil
		}
		elem, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return ListOf(elem), nil

	case c == '(':
		p.pos++
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ')' {
			// Unit.
			p.pos++
			return &Con{Name: "()"}, nil
		}
		first, err := p.parseArrow()
		if err != nil {
			return nil, err
		}
		items := []Type{first}
		for {
			p.skipSpace()
			if p.pos < len(p.src) && p.src[p.pos] == ',' {
				p.pos++
				next, err := p.parseArrow()
				if err != nil {
					return nil, err
				}
				items = append(items, next)
				continue
			}
			break
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if len(items) == 1 {
			return items[0], nil
		}
		return &Tuple{Items: items}, nil

	case unicode.IsLetter(rune(c)):
		name := p.scanName()
		if unicode.IsUpper(rune(name[0])) {
			return &Con{Name: name}, nil
		}
		if tv, ok := p.vars[name]; ok {
			return tv, nil
		}
		tv := NewGenericVar(p.nextID, name)
		p.nextID++
		p.vars[name] = tv
		return tv, nil

	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

func (p *typeParser) scanName() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '\'' {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}
