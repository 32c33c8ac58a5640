package tsast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/emberdata-migrate/internal/tsast"
)

func TestParseSelectsGrammarByExtension(t *testing.T) {
	tsSrc := []byte(`class Foo { bar: string; }`)
	tree, err := tsast.Parse(".ts", tsSrc)
	require.NoError(t, err)
	require.NotNil(t, tree.RootNode())

	jsSrc := []byte(`class Foo { bar() { return 1; } }`)
	tree, err = tsast.Parse(".js", jsSrc)
	require.NoError(t, err)
	require.NotNil(t, tree.RootNode())
}

func TestParseEmptySourceStillProducesTree(t *testing.T) {
	tree, err := tsast.Parse(".js", []byte(""))
	require.NoError(t, err)
	assert.NotNil(t, tree.RootNode())
}
