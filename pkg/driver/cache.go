package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
)

// DefaultCacheSize is the number of compiled programs a session keeps.
const DefaultCacheSize = 64

// Program is a parsed and resolved source, ready to interpret. Trees are
// never mutated after parsing, so a Program can run any number of times.
type Program struct {
	Statements []ast.Statement
	Locals     resolver.Locals
}

// Compile parses and resolves src. Front-end errors come back as
// diag.ErrorList; a resolver failure as *diag.StaticError.
func Compile(src string) (*Program, error) {
	stmts, err := parser.ParseSource(src)
	if err != nil {
		return nil, err
	}
	locals, err := resolver.Resolve(stmts)
	if err != nil {
		return nil, err
	}
	return &Program{Statements: stmts, Locals: locals}, nil
}

// ProgramCache memoizes Compile by source digest. Resolution never looks
// outside its own source, so a cached program is valid in any session.
// Failed compilations are not cached.
type ProgramCache struct {
	programs *lru.ARCCache
	hits     int
	misses   int
}

func NewProgramCache(size int) (*ProgramCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	programs, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("program cache: %w", err)
	}
	return &ProgramCache{programs: programs}, nil
}

func digest(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

func (c *ProgramCache) Compile(src string) (*Program, error) {
	key := digest(src)
	if cached, ok := c.programs.Get(key); ok {
		c.hits++
		return cached.(*Program), nil
	}
	c.misses++
	program, err := Compile(src)
	if err != nil {
		return nil, err
	}
	c.programs.Add(key, program)
	return program, nil
}

// Stats reports cache hits and misses since creation.
func (c *ProgramCache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

func (c *ProgramCache) Len() int {
	return c.programs.Len()
}
