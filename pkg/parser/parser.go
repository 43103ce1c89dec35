// Package parser builds Lox statement trees from tokens by recursive descent.
package parser

import (
	"errors"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diag"
	"lox/interpreter-go/pkg/lexer"
)

// maxConstituents bounds call arguments and function parameters.
const maxConstituents = 255

type functionKind string

const (
	kindFunction functionKind = "function"
	kindMethod   functionKind = "method"
)

// Parser consumes a token slice produced by the lexer.
type Parser struct {
	tokens  []*ast.Token
	current int
	errs    diag.ErrorList
}

func New(tokens []*ast.Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSource scans and parses src. Scanner errors stop before parsing.
func ParseSource(src string) ([]ast.Statement, error) {
	tokens, err := lexer.Scan(src)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

// Parse returns every declaration it could recover. When any diagnostic was
// produced the error is a diag.ErrorList and the statements must not be run.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}
	return statements, p.errs.Err()
}

//-----------------------------------------------------------------------------
// Token helpers
//-----------------------------------------------------------------------------

func (p *Parser) peek() *ast.Token { return p.tokens[p.current] }

func (p *Parser) previous() *ast.Token { return p.tokens[p.current-1] }

func (p *Parser) atEnd() bool { return p.peek().Type == ast.TokEOF }

func (p *Parser) check(kind ast.TokenType) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Type == kind
}

func (p *Parser) advance() *ast.Token {
	if !p.atEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) match(kinds ...ast.TokenType) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind ast.TokenType, msg string) (*ast.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return nil, p.errorAt(p.peek(), msg)
}

// errorAt records a diagnostic and returns it so callers can unwind.
func (p *Parser) errorAt(tok *ast.Token, msg string) error {
	err := &diag.ParseError{Line: tok.Line, Message: msg}
	if tok.Type == ast.TokEOF {
		err.AtEnd = true
	} else {
		err.Where = tok.Lexeme
	}
	p.errs = append(p.errs, err)
	return err
}

// synchronize skips to the next likely statement boundary.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Type == ast.TokSemicolon {
			return
		}
		switch p.peek().Type {
		case ast.TokClass, ast.TokFun, ast.TokVar, ast.TokFor, ast.TokIf,
			ast.TokWhile, ast.TokPrint, ast.TokReturn:
			return
		}
		p.advance()
	}
}

//-----------------------------------------------------------------------------
// Declarations
//-----------------------------------------------------------------------------

func (p *Parser) declaration() (ast.Statement, error) {
	switch {
	case p.match(ast.TokClass):
		return p.classDeclaration()
	case p.match(ast.TokFun):
		return p.function(kindFunction)
	case p.match(ast.TokVar):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() (ast.Statement, error) {
	name, err := p.consume(ast.TokIdentifier, "Expect class name.")
	if err != nil {
		return nil, err
	}
	if p.check(ast.TokLess) {
		return nil, p.errorAt(p.peek(), "Inheritance is not supported.")
	}
	if _, err := p.consume(ast.TokLeftBrace, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionStatement
	for !p.check(ast.TokRightBrace) && !p.atEnd() {
		method, err := p.function(kindMethod)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(ast.TokRightBrace, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return ast.NewClassStatement(name, methods), nil
}

func (p *Parser) function(kind functionKind) (*ast.FunctionStatement, error) {
	name, err := p.consume(ast.TokIdentifier, "Expect "+string(kind)+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokLeftParen, "Expect '(' after "+string(kind)+" name."); err != nil {
		return nil, err
	}
	var params []*ast.Token
	if !p.check(ast.TokRightParen) {
		for {
			if len(params) >= maxConstituents {
				p.errorAt(p.peek(), "Can't have more than 255 constituents.")
			}
			param, err := p.consume(ast.TokIdentifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(ast.TokComma) {
				break
			}
		}
	}
	if _, err := p.consume(ast.TokRightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokLeftBrace, "Expect '{' before "+string(kind)+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.NewFunctionStatement(name, params, body), nil
}

func (p *Parser) varDeclaration() (ast.Statement, error) {
	name, err := p.consume(ast.TokIdentifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var initializer ast.Expression
	if p.match(ast.TokEqual) {
		if initializer, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokSemicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.NewVarStatement(name, initializer), nil
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

func (p *Parser) statement() (ast.Statement, error) {
	switch {
	case p.match(ast.TokFor):
		return p.forStatement()
	case p.match(ast.TokIf):
		return p.ifStatement()
	case p.match(ast.TokPrint):
		return p.printStatement()
	case p.match(ast.TokReturn):
		return p.returnStatement()
	case p.match(ast.TokWhile):
		return p.whileStatement()
	case p.match(ast.TokLeftBrace):
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(body), nil
	default:
		return p.expressionStatement()
	}
}

// forStatement desugars `for (init; cond; incr) body` into a while loop
// wrapped in blocks.
func (p *Parser) forStatement() (ast.Statement, error) {
	if _, err := p.consume(ast.TokLeftParen, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}
	var initializer ast.Statement
	var err error
	switch {
	case p.match(ast.TokSemicolon):
	case p.match(ast.TokVar):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return nil, err
	}

	var condition ast.Expression
	if !p.check(ast.TokSemicolon) {
		if condition, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokSemicolon, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment ast.Expression
	if !p.check(ast.TokRightParen) {
		if increment, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokRightParen, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	if increment != nil {
		body = ast.NewBlockStatement([]ast.Statement{body, ast.NewExpressionStatement(increment)})
	}
	if condition == nil {
		condition = ast.NewLiteralExpression(true)
	}
	body = ast.NewWhileStatement(condition, body)
	if initializer != nil {
		body = ast.NewBlockStatement([]ast.Statement{initializer, body})
	}
	return body, nil
}

func (p *Parser) ifStatement() (ast.Statement, error) {
	if _, err := p.consume(ast.TokLeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokRightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var els ast.Statement
	if p.match(ast.TokElse) {
		if els, err = p.statement(); err != nil {
			return nil, err
		}
	}
	return ast.NewIfStatement(condition, then, els), nil
}

func (p *Parser) printStatement() (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokSemicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.NewPrintStatement(value), nil
}

func (p *Parser) returnStatement() (ast.Statement, error) {
	keyword := p.previous()
	var value ast.Expression
	if !p.check(ast.TokSemicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(ast.TokSemicolon, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return ast.NewReturnStatement(keyword, value), nil
}

func (p *Parser) whileStatement() (ast.Statement, error) {
	if _, err := p.consume(ast.TokLeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokRightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStatement(condition, body), nil
}

func (p *Parser) block() ([]ast.Statement, error) {
	var statements []ast.Statement
	for !p.check(ast.TokRightBrace) && !p.atEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.consume(ast.TokRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(ast.TokSemicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.NewExpressionStatement(expr), nil
}

//-----------------------------------------------------------------------------
// Expressions, lowest precedence first
//-----------------------------------------------------------------------------

func (p *Parser) expression() (ast.Expression, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if !p.match(ast.TokEqual) {
		return expr, nil
	}
	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch target := expr.(type) {
	case *ast.VariableExpression:
		return ast.NewAssignExpression(target.Name, value), nil
	case *ast.GetExpression:
		return ast.NewSetExpression(target.Object, target.Name, value), nil
	}
	// Reported but not unwound: the parser is not confused by this.
	p.errorAt(equals, "Invalid assignment target.")
	return expr, nil
}

func (p *Parser) or() (ast.Expression, error) {
	return p.logical(p.and, ast.TokOr)
}

func (p *Parser) and() (ast.Expression, error) {
	return p.logical(p.equality, ast.TokAnd)
}

func (p *Parser) logical(next func() (ast.Expression, error), op ast.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(op) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.NewLogicalExpression(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) binary(next func() (ast.Expression, error), ops ...ast.TokenType) (ast.Expression, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		operator := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(expr, operator, right)
	}
	return expr, nil
}

func (p *Parser) equality() (ast.Expression, error) {
	return p.binary(p.comparison, ast.TokBangEqual, ast.TokEqualEqual)
}

func (p *Parser) comparison() (ast.Expression, error) {
	return p.binary(p.term, ast.TokGreater, ast.TokGreaterEqual, ast.TokLess, ast.TokLessEqual)
}

func (p *Parser) term() (ast.Expression, error) {
	return p.binary(p.factor, ast.TokMinus, ast.TokPlus)
}

func (p *Parser) factor() (ast.Expression, error) {
	return p.binary(p.unary, ast.TokSlash, ast.TokStar)
}

func (p *Parser) unary() (ast.Expression, error) {
	if p.match(ast.TokBang, ast.TokMinus) {
		operator := p.previous()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(operator, right), nil
	}
	return p.call()
}

func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(ast.TokLeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return nil, err
			}
		case p.match(ast.TokDot):
			name, err := p.consume(ast.TokIdentifier, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = ast.NewGetExpression(expr, name)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression
	if !p.check(ast.TokRightParen) {
		for {
			if len(args) >= maxConstituents {
				p.errorAt(p.peek(), "Can't have more than 255 constituents.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(ast.TokComma) {
				break
			}
		}
	}
	paren, err := p.consume(ast.TokRightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.NewCallExpression(callee, paren, args), nil
}

func (p *Parser) primary() (ast.Expression, error) {
	switch {
	case p.match(ast.TokFalse):
		return ast.NewLiteralExpression(false), nil
	case p.match(ast.TokTrue):
		return ast.NewLiteralExpression(true), nil
	case p.match(ast.TokNil):
		return ast.NewLiteralExpression(nil), nil
	case p.match(ast.TokNumber, ast.TokString):
		return ast.NewLiteralExpression(p.previous().Literal), nil
	case p.match(ast.TokThis):
		return ast.NewThisExpression(p.previous()), nil
	case p.match(ast.TokIdentifier):
		return ast.NewVariableExpression(p.previous()), nil
	case p.match(ast.TokSuper):
		return nil, p.errorAt(p.previous(), "Inheritance is not supported.")
	case p.match(ast.TokLeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(ast.TokRightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.NewGroupingExpression(expr), nil
	}
	return nil, p.errorAt(p.peek(), "Expect expression.")
}

// IsParseError reports whether err carries parser diagnostics.
func IsParseError(err error) bool {
	var parseErr *diag.ParseError
	return errors.As(err, &parseErr)
}
