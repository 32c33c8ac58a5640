package tsast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/emberdata-migrate/internal/tsast"
)

func TestLeadingTriviaCollectsCommentAndDecorator(t *testing.T) {
	src := []byte(`class Account {
  // legacy alias, remove after migration
  @computed
  get fullName() { return this.name; }
}`)
	tree, err := tsast.Parse(".js", src)
	require.NoError(t, err)

	classNode := tsast.FirstChildOfType(tree.RootNode(), "class_declaration")
	require.NotNil(t, classNode)
	body := tsast.ClassBody(classNode)
	members := tsast.ClassMembers(body)
	require.NotEmpty(t, members)

	trivia := tsast.LeadingTrivia(body, members[0], src)
	assert.Contains(t, trivia, "legacy alias")
	assert.Contains(t, trivia, "@computed")
}

func TestLeadingTriviaEmptyForFirstMember(t *testing.T) {
	src := []byte(`class Account {
  name;
}`)
	tree, err := tsast.Parse(".js", src)
	require.NoError(t, err)
	classNode := tsast.FirstChildOfType(tree.RootNode(), "class_declaration")
	body := tsast.ClassBody(classNode)
	members := tsast.ClassMembers(body)
	require.NotEmpty(t, members)

	assert.Equal(t, "", tsast.LeadingTrivia(body, members[0], src))
}
