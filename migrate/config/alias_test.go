package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/emberdata-migrate/migrate/config"
)

func TestMatchImportPatternWildcard(t *testing.T) {
	remainder, ok := config.MatchImportPattern("shared/models/*", "shared/models/account")
	assert.True(t, ok)
	assert.Equal(t, "account", remainder)

	_, ok = config.MatchImportPattern("shared/models/*", "app/models/account")
	assert.False(t, ok)
}

func TestMatchImportPatternExact(t *testing.T) {
	remainder, ok := config.MatchImportPattern("shared/models/account", "shared/models/account")
	assert.True(t, ok)
	assert.Equal(t, "", remainder)

	_, ok = config.MatchImportPattern("shared/models/account", "shared/models/other")
	assert.False(t, ok)
}

func TestSubstituteDirectoryPattern(t *testing.T) {
	assert.Equal(t, "vendor/shared/account", config.SubstituteDirectoryPattern("vendor/shared/*", "account"))
	assert.Equal(t, "vendor/shared/fixed.ts", config.SubstituteDirectoryPattern("vendor/shared/fixed.ts", "account"))
}

func TestResolveTriesAliasesInDeclarationOrder(t *testing.T) {
	aliases := []config.AliasSource{
		{ImportPattern: "shared/models/*", DirectoryPattern: "vendor/shared/*"},
		{ImportPattern: "shared/*", DirectoryPattern: "vendor/catchall/*"},
	}

	path, matched, ok := config.Resolve(aliases, "shared/models/account")
	assert.True(t, ok)
	assert.Equal(t, "vendor/shared/account", path)
	assert.Equal(t, aliases[0], matched)

	path, matched, ok = config.Resolve(aliases, "shared/mixins/trackable")
	assert.True(t, ok)
	assert.Equal(t, "vendor/catchall/mixins/trackable", path)
	assert.Equal(t, aliases[1], matched)

	_, _, ok = config.Resolve(aliases, "app/models/account")
	assert.False(t, ok)
}
