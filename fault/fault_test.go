package fault

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrNotConnected", ErrNotConnected, "add-in not connected"},
		{"ErrUnknownOperation", ErrUnknownOperation, "unknown operation"},
		{"ErrBadArity", ErrBadArity, "wrong number of arguments"},
		{"ErrTypeMismatch", ErrTypeMismatch, "argument type mismatch"},
		{"ErrPanic", ErrPanic, "recovered panic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "kind only",
			err:  &Error{Op: "OnConnection", Kind: KindLifecycle},
			want: "OnConnection (lifecycle)",
		},
		{
			name: "kind and code with cause",
			err:  Activation("launch", CodeTargetNotFound, errors.New("no such file")),
			want: "launch (activation/TARGET_NOT_FOUND): no such file",
		},
		{
			name: "with context",
			err:  Lifecycle("OnDisconnection", errors.New("boom")).WithContext(map[string]any{"mode": 1}),
			want: "OnDisconnection (lifecycle): boom [context: map[mode:1]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	cause := errors.New("access is denied")
	err := Activation("launch", CodePermissionDenied, cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, &Error{Kind: KindActivation}))
	assert.True(t, errors.Is(err, &Error{Kind: KindActivation, Code: CodePermissionDenied}))
	assert.True(t, errors.Is(err, &Error{Kind: KindActivation, Op: "launch"}))
	assert.False(t, errors.Is(err, &Error{Kind: KindActivation, Code: CodeTargetNotFound}))
	assert.False(t, errors.Is(err, &Error{Kind: KindLifecycle}))
	assert.False(t, err.Is(nil))
}

func TestWithContextCopies(t *testing.T) {
	base := Configuration("config.Load", errors.New("bad"))
	withCtx := base.WithContext(map[string]any{"path": "addin.yaml"})

	assert.Nil(t, base.Context)
	assert.Equal(t, "addin.yaml", withCtx.Context["path"])
}

func TestCodeAndKindOf(t *testing.T) {
	err := Activation("launch", CodeAssociationFailed, errors.New("no association"))
	wrapped := errors.Join(errors.New("outer"), err)

	assert.Equal(t, CodeAssociationFailed, CodeOf(wrapped))
	assert.Equal(t, KindActivation, KindOf(wrapped))
	assert.Equal(t, "", CodeOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestGuard(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		assert.NoError(t, Guard("op", KindLifecycle, func() error { return nil }))
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		cause := errors.New("failed")
		err := Guard("OnConnection", KindLifecycle, func() error { return cause })
		require.Error(t, err)
		assert.Equal(t, KindLifecycle, KindOf(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("fault error keeps its kind", func(t *testing.T) {
		inner := Activation("launch", CodeTargetNotFound, errors.New("missing"))
		err := Guard("ExportToObsidian", KindLifecycle, func() error { return inner })
		assert.Equal(t, KindActivation, KindOf(err))
		assert.Equal(t, CodeTargetNotFound, CodeOf(err))
	})

	t.Run("panic is recovered", func(t *testing.T) {
		err := Guard("GetCustomUI", KindIntegration, func() error {
			panic("nil map write")
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPanic)
		assert.Equal(t, KindIntegration, KindOf(err))
		assert.True(t, strings.Contains(err.Error(), "nil map write"))
	})
}
