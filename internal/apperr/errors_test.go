package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpError_Error(t *testing.T) {
	base := errors.New("boom")

	t.Run("includes op, kind and cause", func(t *testing.T) {
		err := E("sitemap.Generate", KindValidation, base)
		assert.Equal(t, "sitemap.Generate: validation: boom", err.Error())
	})

	t.Run("includes field when set", func(t *testing.T) {
		err := E("contrast.Evaluate", KindInvalidColorFormat, base).WithField("foreground")
		assert.Equal(t, "contrast.Evaluate: invalid_color_format (field=foreground): boom", err.Error())
	})

	t.Run("nil receiver", func(t *testing.T) {
		var err *OpError
		assert.Equal(t, "<nil>", err.Error())
		assert.Nil(t, err.Unwrap())
	})
}

func TestKindOf(t *testing.T) {
	base := errors.New("missing")
	wrapped := fmt.Errorf("load: %w", E("quiz.Get", KindNotFound, base))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, KindInternal, KindOf(base))
	assert.Empty(t, FieldOf(wrapped))
}

func TestWithField_DoesNotMutateOriginal(t *testing.T) {
	orig := E("op", KindValidation, nil)
	tagged := orig.WithField("email")

	assert.Empty(t, orig.Field)
	assert.Equal(t, "email", tagged.Field)
	assert.Equal(t, "email", FieldOf(tagged))
}
