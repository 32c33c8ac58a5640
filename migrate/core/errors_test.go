package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/emberdata-migrate/migrate/core"
)

func TestConfigErrorMessage(t *testing.T) {
	err := &core.ConfigError{Option: "model-source-dir", Reason: "must not be empty"}
	assert.Contains(t, err.Error(), "model-source-dir")
	assert.Contains(t, err.Error(), "must not be empty")
}

func TestParseWarningUnwraps(t *testing.T) {
	cause := errors.New("unexpected token")
	warn := &core.ParseWarning{Path: "app/models/user.ts", Err: cause}

	assert.Equal(t, cause, errors.Unwrap(warn))
	assert.Contains(t, warn.Error(), "app/models/user.ts")
}

func TestCycleWarningMessage(t *testing.T) {
	warn := &core.CycleWarning{
		Cycle:       []string{"mixin:a", "mixin:b", "mixin:a"},
		DroppedEdge: "mixin:b->mixin:a",
	}
	assert.Contains(t, warn.Error(), "mixin:b->mixin:a")
}
