package tsast_test

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/emberdata-migrate/internal/tsast"
)

func TestChildrenOfTypeAndText(t *testing.T) {
	src := []byte(`class Account {
  name: string;
  age: number;
  greet() { return this.name; }
}`)
	tree, err := tsast.Parse(".ts", src)
	require.NoError(t, err)

	classNode := tsast.FirstChildOfType(tree.RootNode(), "class_declaration")
	require.NotNil(t, classNode)

	body := tsast.ClassBody(classNode)
	require.NotNil(t, body)

	members := tsast.ClassMembers(body)
	require.Len(t, members, 3)

	names := make([]string, len(members))
	for i, m := range members {
		names[i] = tsast.MemberName(m, src)
	}
	assert.Equal(t, []string{"name", "age", "greet"}, names)
}

func TestStringLiteralValue(t *testing.T) {
	src := []byte(`import { attr } from 'ember-data/attr';`)
	tree, err := tsast.Parse(".js", src)
	require.NoError(t, err)

	found := false
	tsast.Walk(tree.RootNode(), func(n *sitter.Node) bool {
		if n.Type() == "string" {
			v, ok := tsast.StringLiteralValue(n, src)
			if ok && v == "ember-data/attr" {
				found = true
			}
		}
		return true
	})
	assert.True(t, found)
}
