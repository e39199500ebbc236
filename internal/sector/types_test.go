package sector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"", TypeWalk},
		{"walk", TypeWalk},
		{"WALK", TypeWalk},
		{"funnel", TypeFunnel},
		{"camera", TypeCamera},
		{"special", TypeSpecial},
		{"hot", TypeHot},
		{"none", TypeNone},
		{"4096", TypeWalk},
		{"0x2000", TypeCamera},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseType("lava")
	assert.Error(t, err)
}

func TestTypeMatches(t *testing.T) {
	assert.True(t, TypeWalk.Matches(TypeWalk))
	assert.True(t, TypeFunnel.Matches(TypeWalk))
	assert.False(t, TypeCamera.Matches(TypeWalk))
	assert.False(t, TypeHot.Matches(TypeNone))

	for _, typ := range []Type{TypeWalk, TypeFunnel, TypeCamera, TypeSpecial, TypeHot} {
		assert.True(t, typ.Matches(TypeAny), "%s must match any", typ)
	}
	assert.False(t, TypeNone.Matches(TypeAny))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "walk", TypeWalk.String())
	assert.Equal(t, "hot", TypeHot.String())
	assert.Equal(t, "0x3000", (TypeWalk | TypeCamera).String())
}
