// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser builds expressions from their text representation.
//
// Grammar, from the lowest to the highest precedence:
//
//	assign         = additive [ "=" additive ] .
//	additive       = multiplicative { ( "+" | "-" ) multiplicative } .
//	multiplicative = power { ( "*" | "/" ) power } .
//	power          = unary [ "^" power ] .
//	unary          = ( "+" | "-" ) unary | primary .
//	primary        = number | identifier [ call | index ] | "(" assign ")" | "[" list "]" .
//	call           = "(" list ")" .
//	index          = "[" ( int | identifier ) "]" .
//	list           = assign { "," assign } .
//
// Expressions are built with the ir constructors, so the result is already
// in canonical form.
package parser

import (
	"go/scanner"
	"go/token"
	"strconv"

	"github.com/gx-org/cas/build/fmterr"
	"github.com/gx-org/cas/build/ir"
	"github.com/gx-org/cas/stdlib/ops"
	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/multierr"
)

func tracer() tracing.Trace {
	return tracing.Select("cas.parser")
}

// FileName is the name given to the source of an expression in error positions.
const FileName = "expr"

type parser struct {
	fset    *token.FileSet
	scanner scanner.Scanner
	errs    error

	pos token.Pos
	tok token.Token
	lit string
}

// Parse an expression.
func Parse(src string) (ir.Expr, error) {
	tracer().Debugf("parse %q", src)
	p := &parser{fset: token.NewFileSet()}
	file := p.fset.AddFile(FileName, p.fset.Base(), len(src))
	p.scanner.Init(file, []byte(src), p.scanError, 0)
	p.next()
	expr, err := p.parseAssign()
	if p.errs != nil {
		// Scanner errors take precedence: they explain parsing errors.
		return nil, p.errs
	}
	if err != nil {
		return nil, err
	}
	if p.tok != token.EOF {
		return nil, p.errorf("unexpected %s after expression", p.tokString())
	}
	return expr, nil
}

// MustParse parses an expression and panics if the source is invalid.
func MustParse(src string) ir.Expr {
	expr, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return expr
}

func (p *parser) scanError(pos token.Position, msg string) {
	p.errs = multierr.Append(p.errs, fmterr.Errorf(fmterr.ErrSyntax, "%s: %s", pos, msg))
}

func (p *parser) next() {
	for {
		p.pos, p.tok, p.lit = p.scanner.Scan()
		// Skip semicolons inserted automatically by the scanner.
		if p.tok == token.SEMICOLON && p.lit == "\n" {
			continue
		}
		return
	}
}

func (p *parser) tokString() string {
	switch p.tok {
	case token.EOF:
		return "end of expression"
	case token.IDENT, token.INT, token.FLOAT:
		return strconv.Quote(p.lit)
	}
	return strconv.Quote(p.tok.String())
}

func (p *parser) errorf(format string, a ...any) error {
	err := fmterr.PosErrorf(p.fset, p.pos, fmterr.ErrSyntax, format, a...)
	tracer().Errorf("%v", err)
	return err
}

func (p *parser) expect(tok token.Token) error {
	if p.tok != tok {
		return p.errorf("got %s but want %q", p.tokString(), tok.String())
	}
	p.next()
	return nil
}

func (p *parser) parseAssign() (ir.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	if p.tok != token.ASSIGN {
		return left, nil
	}
	p.next()
	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	return ir.NewAssign(left, right), nil
}

func (p *parser) parseAdditive() (ir.Expr, error) {
	x, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.tok == token.ADD || p.tok == token.SUB {
		tok := p.tok
		p.next()
		y, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if tok == token.ADD {
			x = ir.Add(x, y)
		} else {
			x = ir.Sub(x, y)
		}
	}
	return x, nil
}

func (p *parser) parseMultiplicative() (ir.Expr, error) {
	x, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.tok == token.MUL || p.tok == token.QUO {
		tok := p.tok
		p.next()
		y, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		if tok == token.MUL {
			x = ir.Mul(x, y)
		} else {
			x = ir.Div(x, y)
		}
	}
	return x, nil
}

func (p *parser) parsePower() (ir.Expr, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.tok != token.XOR {
		return x, nil
	}
	p.next()
	y, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return ir.Pow(x, y), nil
}

func (p *parser) parseUnary() (ir.Expr, error) {
	switch p.tok {
	case token.ADD:
		p.next()
		return p.parseUnary()
	case token.SUB:
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ir.Neg(x), nil
	case token.DEC:
		// The scanner reads -- as a single token.
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ir.Neg(ir.Neg(x)), nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ir.Expr, error) {
	switch p.tok {
	case token.INT:
		return p.parseInt()
	case token.FLOAT:
		return p.parseFloat()
	case token.IDENT:
		return p.parseIdent()
	case token.LPAREN:
		p.next()
		x, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		if err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return x, nil
	case token.LBRACK:
		pos := p.pos
		p.next()
		elems, err := p.parseList(token.RBRACK)
		if err != nil {
			return nil, err
		}
		arr, err := ir.NewArray(elems...)
		if err != nil {
			return nil, fmterr.Position(p.fset, pos, err)
		}
		return arr, nil
	}
	return nil, p.errorf("unexpected %s", p.tokString())
}

func (p *parser) parseInt() (ir.Expr, error) {
	v, err := strconv.ParseInt(p.lit, 0, 64)
	if err != nil {
		// Integer literals too large for an int64 are parsed as floats.
		f, ferr := strconv.ParseFloat(p.lit, 64)
		if ferr != nil {
			return nil, p.errorf("invalid integer %s: %v", p.lit, err)
		}
		p.next()
		return ir.NewConst(f), nil
	}
	p.next()
	return ir.NewConst(float64(v)), nil
}

func (p *parser) parseFloat() (ir.Expr, error) {
	v, err := strconv.ParseFloat(p.lit, 64)
	if err != nil {
		return nil, p.errorf("invalid number %s: %v", p.lit, err)
	}
	p.next()
	return ir.NewConst(v), nil
}

func (p *parser) parseList(end token.Token) ([]ir.Expr, error) {
	var elems []ir.Expr
	for p.tok != end {
		el, err := p.parseAssign()
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
		if p.tok != token.COMMA {
			break
		}
		p.next()
	}
	if err := p.expect(end); err != nil {
		return nil, err
	}
	return elems, nil
}

func (p *parser) parseIdent() (ir.Expr, error) {
	pos, name := p.pos, p.lit
	p.next()
	switch p.tok {
	case token.LPAREN:
		p.next()
		args, err := p.parseList(token.RPAREN)
		if err != nil {
			return nil, err
		}
		return p.call(pos, name, args)
	case token.LBRACK:
		p.next()
		if p.tok != token.INT && p.tok != token.IDENT {
			return nil, p.errorf("got %s but want an index", p.tokString())
		}
		name = name + "[" + p.lit + "]"
		p.next()
		if err := p.expect(token.RBRACK); err != nil {
			return nil, err
		}
		return ir.NewVariable(name), nil
	}
	if _, err := ops.LookupConstant(ops.ID(name)); err == nil {
		return ir.NamedConstant(name)
	}
	return ir.NewVariable(name), nil
}

func (p *parser) call(pos token.Pos, name string, args []ir.Expr) (ir.Expr, error) {
	var (
		expr ir.Expr
		err  error
	)
	switch len(args) {
	case 1:
		expr, err = ir.Apply(ops.ID(name), args[0])
	case 2:
		expr, err = ir.ApplyBinary(ops.ID(name), args[0], args[1])
	default:
		return nil, fmterr.PosErrorf(p.fset, pos, fmterr.ErrSyntax, "call to %s with %d arguments: operators take 1 or 2 arguments", name, len(args))
	}
	if err != nil {
		return nil, fmterr.PosPrefixWith(p.fset, pos, " ")(err)
	}
	return expr, nil
}
