package scaffold

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstitute(t *testing.T) {
	ctx := Context{"name": "foo", "color": "green"}

	tests := []struct {
		name     string
		template string
		ctx      Context
		want     string
		wantErr  error
	}{
		{name: "placeholder with suffix", template: "%(name)s-x", ctx: ctx, want: "foo-x"},
		{name: "empty template", template: "", ctx: ctx, want: ""},
		{name: "no placeholders", template: "plain text", ctx: ctx, want: "plain text"},
		{name: "several placeholders", template: "My %(color)s %(name)s", ctx: ctx, want: "My green foo"},
		{name: "escaped percent", template: "100%% %(name)s", ctx: ctx, want: "100% foo"},
		{name: "missing placeholder", template: "%(missing)s", ctx: Context{}, wantErr: ErrMissingPlaceholder},
		{name: "nil context", template: "%(name)s", ctx: nil, wantErr: ErrMissingPlaceholder},
		{name: "unterminated placeholder", template: "%(name", ctx: ctx, wantErr: ErrMalformedTemplate},
		{name: "unsupported conversion", template: "%(name)d", ctx: ctx, wantErr: ErrMalformedTemplate},
		{name: "lone percent", template: "50% off", ctx: ctx, wantErr: ErrMalformedTemplate},
		{name: "trailing percent", template: "50%", ctx: ctx, wantErr: ErrMalformedTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.template, tt.ctx)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got error %v, want %v", err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextMergeLeavesOriginalUntouched(t *testing.T) {
	base := Context{"name": "foo", "env": "dev"}
	merged := base.Merge(Context{"env": "prod", "extra": "1"})

	assert.Equal(t, Context{"name": "foo", "env": "prod", "extra": "1"}, merged)
	assert.Equal(t, Context{"name": "foo", "env": "dev"}, base)
}

func TestBuilderSubstituteOverride(t *testing.T) {
	b, _ := newTestBuilder(t, WithContext(map[string]string{"color": "green"}))

	got, err := b.Substitute("My %(color)s wagon", nil)
	assert.NoError(t, err)
	assert.Equal(t, "My green wagon", got)

	got, err = b.Substitute("My %(color)s wagon", Context{"color": "red"})
	assert.NoError(t, err)
	assert.Equal(t, "My red wagon", got)
}
