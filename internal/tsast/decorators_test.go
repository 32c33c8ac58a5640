package tsast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/emberdata-migrate/internal/tsast"
)

func TestMemberDecoratorsAndParseDecorator(t *testing.T) {
	src := []byte(`class Account extends Model {
  @attr('string') name;
  @belongsTo('user', { async: true, inverse: 'accounts' }) owner;
}`)
	tree, err := tsast.Parse(".js", src)
	require.NoError(t, err)

	classNode := tsast.FirstChildOfType(tree.RootNode(), "class_declaration")
	require.NotNil(t, classNode)
	body := tsast.ClassBody(classNode)
	members := tsast.ClassMembers(body)
	require.Len(t, members, 2)

	nameDecorators := tsast.MemberDecorators(body, members[0])
	require.Len(t, nameDecorators, 1)
	d := tsast.ParseDecorator(nameDecorators[0], src)
	require.NotNil(t, d)
	assert.Equal(t, "attr", d.Name)
	require.Len(t, d.Arguments, 1)

	ownerDecorators := tsast.MemberDecorators(body, members[1])
	require.Len(t, ownerDecorators, 1)
	d2 := tsast.ParseDecorator(ownerDecorators[0], src)
	require.NotNil(t, d2)
	assert.Equal(t, "belongsTo", d2.Name)
	require.Len(t, d2.Arguments, 2)
}

func TestParseDecoratorBareDecorator(t *testing.T) {
	src := []byte(`class Account {
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

	decorators := tsast.MemberDecorators(body, members[0])
	require.Len(t, decorators, 1)
	d := tsast.ParseDecorator(decorators[0], src)
	require.NotNil(t, d)
	assert.Equal(t, "computed", d.Name)
	assert.Empty(t, d.Arguments)
}
