package ast

type NodeType string

const (
	NodeLiteralExpression   NodeType = "LiteralExpression"
	NodeGroupingExpression  NodeType = "GroupingExpression"
	NodeUnaryExpression     NodeType = "UnaryExpression"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeLogicalExpression   NodeType = "LogicalExpression"
	NodeVariableExpression  NodeType = "VariableExpression"
	NodeAssignExpression    NodeType = "AssignExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeGetExpression       NodeType = "GetExpression"
	NodeSetExpression       NodeType = "SetExpression"
	NodeThisExpression      NodeType = "ThisExpression"
	NodeExpressionStatement NodeType = "ExpressionStatement"
	NodePrintStatement      NodeType = "PrintStatement"
	NodeVarStatement        NodeType = "VarStatement"
	NodeBlockStatement      NodeType = "BlockStatement"
	NodeIfStatement         NodeType = "IfStatement"
	NodeWhileStatement      NodeType = "WhileStatement"
	NodeFunctionStatement   NodeType = "FunctionStatement"
	NodeClassStatement      NodeType = "ClassStatement"
	NodeReturnStatement     NodeType = "ReturnStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Both unions are closed: only this package can add
// variants.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// LiteralExpression embeds a scanned value: nil, bool, float64 or string.
type LiteralExpression struct {
	nodeImpl
	expressionMarker

	Value any `json:"value"`
}

func NewLiteralExpression(value any) *LiteralExpression {
	return &LiteralExpression{nodeImpl: newNodeImpl(NodeLiteralExpression), Value: value}
}

type GroupingExpression struct {
	nodeImpl
	expressionMarker

	Expression Expression `json:"expression"`
}

func NewGroupingExpression(expr Expression) *GroupingExpression {
	return &GroupingExpression{nodeImpl: newNodeImpl(NodeGroupingExpression), Expression: expr}
}

type UnaryExpression struct {
	nodeImpl
	expressionMarker

	Operator *Token     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewUnaryExpression(operator *Token, right Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Right: right}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator *Token     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(left Expression, operator *Token, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Left: left, Operator: operator, Right: right}
}

// LogicalExpression is `and` / `or`; kept apart from BinaryExpression
// because it short-circuits.
type LogicalExpression struct {
	nodeImpl
	expressionMarker

	Left     Expression `json:"left"`
	Operator *Token     `json:"operator"`
	Right    Expression `json:"right"`
}

func NewLogicalExpression(left Expression, operator *Token, right Expression) *LogicalExpression {
	return &LogicalExpression{nodeImpl: newNodeImpl(NodeLogicalExpression), Left: left, Operator: operator, Right: right}
}

type VariableExpression struct {
	nodeImpl
	expressionMarker

	Name *Token `json:"name"`
}

func NewVariableExpression(name *Token) *VariableExpression {
	return &VariableExpression{nodeImpl: newNodeImpl(NodeVariableExpression), Name: name}
}

type AssignExpression struct {
	nodeImpl
	expressionMarker

	Name  *Token     `json:"name"`
	Value Expression `json:"value"`
}

func NewAssignExpression(name *Token, value Expression) *AssignExpression {
	return &AssignExpression{nodeImpl: newNodeImpl(NodeAssignExpression), Name: name, Value: value}
}

type CallExpression struct {
	nodeImpl
	expressionMarker

	Callee    Expression   `json:"callee"`
	Paren     *Token       `json:"paren"`
	Arguments []Expression `json:"arguments"`
}

func NewCallExpression(callee Expression, paren *Token, args []Expression) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Callee: callee, Paren: paren, Arguments: args}
}

type GetExpression struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   *Token     `json:"name"`
}

func NewGetExpression(object Expression, name *Token) *GetExpression {
	return &GetExpression{nodeImpl: newNodeImpl(NodeGetExpression), Object: object, Name: name}
}

type SetExpression struct {
	nodeImpl
	expressionMarker

	Object Expression `json:"object"`
	Name   *Token     `json:"name"`
	Value  Expression `json:"value"`
}

func NewSetExpression(object Expression, name *Token, value Expression) *SetExpression {
	return &SetExpression{nodeImpl: newNodeImpl(NodeSetExpression), Object: object, Name: name, Value: value}
}

type ThisExpression struct {
	nodeImpl
	expressionMarker

	Keyword *Token `json:"keyword"`
}

func NewThisExpression(keyword *Token) *ThisExpression {
	return &ThisExpression{nodeImpl: newNodeImpl(NodeThisExpression), Keyword: keyword}
}

//-----------------------------------------------------------------------------
// Statements
//-----------------------------------------------------------------------------

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr}
}

type PrintStatement struct {
	nodeImpl
	statementMarker

	Expression Expression `json:"expression"`
}

func NewPrintStatement(expr Expression) *PrintStatement {
	return &PrintStatement{nodeImpl: newNodeImpl(NodePrintStatement), Expression: expr}
}

// VarStatement declares a variable; Initializer is nil for `var x;`.
type VarStatement struct {
	nodeImpl
	statementMarker

	Name        *Token     `json:"name"`
	Initializer Expression `json:"initializer,omitempty"`
}

func NewVarStatement(name *Token, initializer Expression) *VarStatement {
	return &VarStatement{nodeImpl: newNodeImpl(NodeVarStatement), Name: name, Initializer: initializer}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Statements []Statement `json:"statements"`
}

func NewBlockStatement(statements []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Statements: statements}
}

// IfStatement leaves Else nil when there is no else branch.
type IfStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Then      Statement  `json:"then"`
	Else      Statement  `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, then, els Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Then: then, Else: els}
}

type WhileStatement struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileStatement(condition Expression, body Statement) *WhileStatement {
	return &WhileStatement{nodeImpl: newNodeImpl(NodeWhileStatement), Condition: condition, Body: body}
}

// FunctionStatement declares a named function or, inside a class, a method.
type FunctionStatement struct {
	nodeImpl
	statementMarker

	Name   *Token      `json:"name"`
	Params []*Token    `json:"params"`
	Body   []Statement `json:"body"`
}

func NewFunctionStatement(name *Token, params []*Token, body []Statement) *FunctionStatement {
	return &FunctionStatement{nodeImpl: newNodeImpl(NodeFunctionStatement), Name: name, Params: params, Body: body}
}

type ClassStatement struct {
	nodeImpl
	statementMarker

	Name    *Token               `json:"name"`
	Methods []*FunctionStatement `json:"methods"`
}

func NewClassStatement(name *Token, methods []*FunctionStatement) *ClassStatement {
	return &ClassStatement{nodeImpl: newNodeImpl(NodeClassStatement), Name: name, Methods: methods}
}

// ReturnStatement carries an optional value; Value is nil for a bare `return;`.
type ReturnStatement struct {
	nodeImpl
	statementMarker

	Keyword *Token     `json:"keyword"`
	Value   Expression `json:"value,omitempty"`
}

func NewReturnStatement(keyword *Token, value Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Keyword: keyword, Value: value}
}
