package ast

// Builders used by tests and tools to assemble trees without a parser.
// Every builder mints fresh tokens on line 1, so each call yields a distinct
// reference identity.

var operatorTypes = map[string]TokenType{
	"-":   TokMinus,
	"+":   TokPlus,
	"/":   TokSlash,
	"*":   TokStar,
	"!":   TokBang,
	"!=":  TokBangEqual,
	"==":  TokEqualEqual,
	">":   TokGreater,
	">=":  TokGreaterEqual,
	"<":   TokLess,
	"<=":  TokLessEqual,
	"and": TokAnd,
	"or":  TokOr,
}

func Tok(typ TokenType, lexeme string) *Token {
	return NewToken(typ, lexeme, nil, 1)
}

func Ident(name string) *Token {
	return Tok(TokIdentifier, name)
}

func Op(lexeme string) *Token {
	typ, ok := operatorTypes[lexeme]
	if !ok {
		panic("ast: unknown operator " + lexeme)
	}
	return Tok(typ, lexeme)
}

// Literal helpers.

func Num(value float64) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Str(value string) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Bool(value bool) *LiteralExpression {
	return NewLiteralExpression(value)
}

func Nil() *LiteralExpression {
	return NewLiteralExpression(nil)
}

// Expression helpers.

func ID(name string) *VariableExpression {
	return NewVariableExpression(Ident(name))
}

func Assign(name string, value Expression) *AssignExpression {
	return NewAssignExpression(Ident(name), value)
}

func Group(expr Expression) *GroupingExpression {
	return NewGroupingExpression(expr)
}

func Un(op string, right Expression) *UnaryExpression {
	return NewUnaryExpression(Op(op), right)
}

func Bin(left Expression, op string, right Expression) *BinaryExpression {
	return NewBinaryExpression(left, Op(op), right)
}

func Logic(left Expression, op string, right Expression) *LogicalExpression {
	return NewLogicalExpression(left, Op(op), right)
}

func CallExpr(callee Expression, args ...Expression) *CallExpression {
	return NewCallExpression(callee, Tok(TokRightParen, ")"), args)
}

func Member(object Expression, name string) *GetExpression {
	return NewGetExpression(object, Ident(name))
}

func SetMember(object Expression, name string, value Expression) *SetExpression {
	return NewSetExpression(object, Ident(name), value)
}

func Self() *ThisExpression {
	return NewThisExpression(Tok(TokThis, "this"))
}

// Statement helpers.

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr)
}

func PrintStmt(expr Expression) *PrintStatement {
	return NewPrintStatement(expr)
}

func VarDecl(name string, initializer Expression) *VarStatement {
	return NewVarStatement(Ident(name), initializer)
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

func IfStmt(condition Expression, then, els Statement) *IfStatement {
	return NewIfStatement(condition, then, els)
}

func While(condition Expression, body Statement) *WhileStatement {
	return NewWhileStatement(condition, body)
}

func Fn(name string, params []string, body ...Statement) *FunctionStatement {
	tokens := make([]*Token, 0, len(params))
	for _, p := range params {
		tokens = append(tokens, Ident(p))
	}
	return NewFunctionStatement(Ident(name), tokens, body)
}

func ClassDecl(name string, methods ...*FunctionStatement) *ClassStatement {
	return NewClassStatement(Ident(name), methods)
}

func Ret(value Expression) *ReturnStatement {
	return NewReturnStatement(Tok(TokReturn, "return"), value)
}

func Prog(statements ...Statement) []Statement {
	return statements
}
