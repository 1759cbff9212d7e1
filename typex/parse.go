package typex

import (
	"errors"
	"fmt"
	"sync"
	"unicode"
	"unicode/utf8"
)

var (
	ErrSyntax      = errors.New("syntax error")
	ErrUnknownName = errors.New("unknown type name")
	ErrArity       = errors.New("wrong number of type parameters")
)

// Form constructs a parameterized expression from its arguments, such as "list[int]".
type Form func(args []Expr) (Expr, error)

// Registry maps names to expressions and parameterized forms for [Registry.Parse].
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names map[string]Expr
	forms map[string]Form
}

// NewRegistry creates an empty [Registry].
// Use [DefaultRegistry] to start with the built-in names.
func NewRegistry() *Registry {
	return &Registry{
		names: map[string]Expr{},
		forms: map[string]Form{},
	}
}

// DefaultRegistry creates a new [Registry] populated with the built-in names.
//
//   - Sentinels: any, object, never, noreturn, none, nil, None, and "...".
//   - Classes: str, string, int, uint, float, complex, bool, bytes, error, list, seq, sequence, tuple, dict, map, and mapping.
//   - Forms: list[T], tuple[T...], tuple[T, ...], dict[K, V], optional[T], and union[T...], with the same aliases as above.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, name := range []string{"any", "object"} {
		r.Register(name, Any)
	}
	for _, name := range []string{"never", "noreturn"} {
		r.Register(name, Never)
	}
	for _, name := range []string{"none", "nil", "None"} {
		r.Register(name, None)
	}
	r.Register("...", Ellipsis)
	r.Register("str", String)
	for _, c := range []*Class{String, Int, Uint, Float, Complex, Bool, Bytes, Error} {
		r.RegisterClass(c)
	}
	for _, name := range []string{"list", "seq", "sequence"} {
		r.Register(name, List)
		r.RegisterForm(name, sequenceForm)
	}
	r.Register("tuple", TupleClass)
	r.RegisterForm("tuple", func(args []Expr) (Expr, error) {
		t, err := newTuple(args)
		if err != nil {
			return nil, err
		}
		return t, nil
	})
	for _, name := range []string{"dict", "map", "mapping"} {
		r.Register(name, Dict)
		r.RegisterForm(name, func(args []Expr) (Expr, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("%w: %s expects 2 parameters, got %d", ErrArity, name, len(args))
			}
			return MappingOf(args[0], args[1]), nil
		})
	}
	for _, name := range []string{"optional", "Optional"} {
		r.RegisterForm(name, func(args []Expr) (Expr, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("%w: %s expects 1 parameter, got %d", ErrArity, name, len(args))
			}
			return Optional(args[0]), nil
		})
	}
	for _, name := range []string{"union", "Union"} {
		r.RegisterForm(name, func(args []Expr) (Expr, error) {
			return Union(args...), nil
		})
	}
	return r
}

func sequenceForm(args []Expr) (Expr, error) {
	if len(args) == 1 {
		return Sequence(args[0]), nil
	}
	return Generic(List, args...), nil
}

var std = DefaultRegistry()

// Register associates a name with an expression.
func (r *Registry) Register(name string, expr Expr) *Registry {
	mustExpr(expr)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[name] = expr
	return r
}

// RegisterClass registers a [Class] by its name.
// A registered class used with parameters, like "name[int]", is parsed as a [GenericExpr] unless a [Form] is registered with the same name.
func (r *Registry) RegisterClass(c *Class) *Registry {
	return r.Register(c.Name(), c)
}

// RegisterForm associates a name with a parameterized [Form].
func (r *Registry) RegisterForm(name string, form Form) *Registry {
	if form == nil {
		panic("nil form")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[name] = form
	return r
}

func (r *Registry) lookup(name string) (Expr, Form) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names[name], r.forms[name]
}

// Parse parses src with the built-in names of [DefaultRegistry].
func Parse(src string) (Expr, error) {
	return std.Parse(src)
}

// MustParse is the same as [Parse], but panics if src can't be parsed.
func MustParse(src string) Expr {
	expr, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return expr
}

// Parse parses a textual type expression using the names in this [Registry].
//
//	expr := term ('|' term)*
//	term := name | name '[' expr (',' expr)* ']' | '(' expr ')' | '...'
func (r *Registry) Parse(src string) (Expr, error) {
	p := &parser{reg: r, lex: lexer{src: src}}
	p.next()
	expr, err := p.union()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, p.unexpected()
	}
	return expr, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokLBrack
	tokRBrack
	tokLParen
	tokRParen
	tokComma
	tokPipe
	tokInvalid
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", t.text)
}

var punctuation = map[byte]tokenKind{
	'[': tokLBrack,
	']': tokRBrack,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
	'|': tokPipe,
}

type lexer struct {
	src string
	pos int
}

func isNameRune(r rune, first bool) bool {
	if r == '_' || unicode.IsLetter(r) {
		return true
	}
	return !first && (r == '.' || unicode.IsDigit(r))
}

func (l *lexer) scan() token {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += size
	}
	start := l.pos
	if start >= len(l.src) {
		return token{kind: tokEOF, pos: start}
	}
	if kind, ok := punctuation[l.src[start]]; ok {
		l.pos++
		return token{kind: kind, text: l.src[start:l.pos], pos: start}
	}
	if len(l.src)-start >= 3 && l.src[start:start+3] == "..." {
		l.pos += 3
		return token{kind: tokName, text: "...", pos: start}
	}
	r, size := utf8.DecodeRuneInString(l.src[start:])
	if !isNameRune(r, true) {
		l.pos += size
		return token{kind: tokInvalid, text: string(r), pos: start}
	}
	l.pos += size
	for l.pos < len(l.src) {
		r, size = utf8.DecodeRuneInString(l.src[l.pos:])
		if !isNameRune(r, false) {
			break
		}
		l.pos += size
	}
	return token{kind: tokName, text: l.src[start:l.pos], pos: start}
}

type parser struct {
	reg *Registry
	lex lexer
	tok token
}

func (p *parser) next() {
	p.tok = p.lex.scan()
}

func (p *parser) unexpected() error {
	return fmt.Errorf("%w: unexpected %s at offset %d", ErrSyntax, p.tok, p.tok.pos)
}

func (p *parser) expect(kind tokenKind) error {
	if p.tok.kind != kind {
		return p.unexpected()
	}
	p.next()
	return nil
}

func (p *parser) union() (Expr, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	members := []Expr{first}
	for p.tok.kind == tokPipe {
		p.next()
		member, err := p.term()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return Union(members...), nil
}

func (p *parser) term() (Expr, error) {
	switch p.tok.kind {
	case tokLParen:
		p.next()
		expr, err := p.union()
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case tokName:
	default:
		return nil, p.unexpected()
	}

	name, pos := p.tok.text, p.tok.pos
	p.next()
	expr, form := p.reg.lookup(name)
	if p.tok.kind != tokLBrack {
		if expr == nil {
			if form != nil {
				return nil, fmt.Errorf("%w: %s requires parameters at offset %d", ErrArity, name, pos)
			}
			return nil, fmt.Errorf("%w: '%s' at offset %d", ErrUnknownName, name, pos)
		}
		return expr, nil
	}

	p.next()
	var args []Expr
	for {
		arg, err := p.union()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.tok.kind != tokComma {
			break
		}
		p.next()
	}
	if err := p.expect(tokRBrack); err != nil {
		return nil, err
	}

	if form != nil {
		result, err := form(args)
		if err != nil {
			return nil, fmt.Errorf("%w (at offset %d)", err, pos)
		}
		return result, nil
	}
	switch e := expr.(type) {
	case nil:
		return nil, fmt.Errorf("%w: '%s' at offset %d", ErrUnknownName, name, pos)
	case *Class:
		return Generic(e, args...), nil
	default:
		return nil, fmt.Errorf("%w: %s doesn't accept parameters at offset %d", ErrArity, name, pos)
	}
}
