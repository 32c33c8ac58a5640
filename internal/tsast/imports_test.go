package tsast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/emberdata-migrate/internal/tsast"
)

func TestImportMapDefaultAndNamed(t *testing.T) {
	src := []byte(`import Model from '@ember-data/model';
import { attr, belongsTo } from '@ember-data/model';
import type { Trackable } from './mixins/trackable';
`)
	tree, err := tsast.Parse(".ts", src)
	require.NoError(t, err)

	imports := tsast.ImportMap(tree.RootNode(), src)

	model, ok := imports["Model"]
	require.True(t, ok)
	assert.Equal(t, "@ember-data/model", model.Path)
	assert.False(t, model.TypeOnly)

	attrBinding, ok := imports["attr"]
	require.True(t, ok)
	assert.Equal(t, "@ember-data/model", attrBinding.Path)

	trackable, ok := imports["Trackable"]
	require.True(t, ok)
	assert.Equal(t, "./mixins/trackable", trackable.Path)
	assert.True(t, trackable.TypeOnly)
}
