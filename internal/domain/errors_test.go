package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", CatalogMiss("xyz"))

	assert.True(t, errors.Is(err, ErrCatalogMiss))
	assert.False(t, errors.Is(err, ErrValidation))
	assert.Equal(t, KindCatalogMiss, KindOf(err))
	assert.Equal(t, "Team 'xyz' not configured", MessageOf(err))
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := ProviderError("image provider returned 500", errors.New("upstream exploded"))

	assert.Equal(t, "image provider returned 500: upstream exploded", err.Error())
	assert.True(t, errors.Is(err, ErrProvider))
}

func TestKindOfUntypedError(t *testing.T) {
	err := errors.New("boom")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "internal error", MessageOf(err))
	assert.Equal(t, "", MessageOf(nil))
}
