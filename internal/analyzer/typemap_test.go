package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyanc/internal/analyzer"
	"nyanc/internal/ast"
	"nyanc/internal/driver"
)

func TestTypeMapSurvivesRepeatedAST(t *testing.T) {
	db := driver.New()
	file := db.AddVirtual("main.ny", "let x = 1 + 2;\n")

	p := db.AST(file)
	let, ok := p.Tree.Items.Let(p.Tree.Module(p.Root).Items[0])
	require.True(t, ok)
	require.True(t, let.Value.IsValid())

	db.TypeMap().Set(file, let.Value, analyzer.TypeRef(42))

	// тот же файл — то же дерево, значит ключ по-прежнему указывает на тот же узел
	again := db.AST(file)
	require.Same(t, p.Tree, again.Tree)
	bin, ok := again.Tree.Exprs.Binary(let.Value)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, bin.Op)

	ty, ok := db.TypeMap().Get(file, let.Value)
	require.True(t, ok)
	assert.Equal(t, analyzer.TypeRef(42), ty)
	assert.Equal(t, 1, db.TypeMap().Len())
}

func TestTypeMapKeysAreFileScoped(t *testing.T) {
	m := analyzer.NewTypeMap()
	m.Set(0, 1, 7)
	m.Set(1, 1, 9)

	a, _ := m.Get(0, 1)
	b, _ := m.Get(1, 1)
	assert.Equal(t, analyzer.TypeRef(7), a)
	assert.Equal(t, analyzer.TypeRef(9), b)
	_, ok := m.Get(2, 1)
	assert.False(t, ok)
}
