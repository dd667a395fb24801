package asce

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    Family
		wantErr bool
	}{
		{in: "asd", want: ASD},
		{in: "LRFD", want: LRFD},
		{in: " Asd ", want: ASD},
		{in: "cases", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFamily(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCase(t *testing.T) {
	for _, s := range []string{"D", "Lr", "R", "S"} {
		c, err := ParseCase(s)
		require.NoError(t, err)
		assert.True(t, IsUserCase(c))
	}
	for _, s := range []string{"PR", "PS", "L", "d", ""} {
		_, err := ParseCase(s)
		assert.Error(t, err, s)
	}
}

func TestCombinationTables(t *testing.T) {
	assert.Len(t, Cases(), 6)
	assert.Len(t, Combinations(ASD), 5)
	assert.Len(t, Combinations(LRFD), 6)
	assert.Len(t, AllCombinations(), 17)
	assert.Empty(t, Combinations(Family("other")))

	assert.True(t, InFamily(RainPondingCombo, ASD))
	assert.True(t, InFamily(SnowPondingCombo, ASD))
	assert.False(t, InFamily(RainPondingCombo, LRFD))
	assert.False(t, InFamily("1.0D", ASD))
	assert.True(t, InFamily("1.2D+1.6R+1.6P", LRFD))

	factors := Combinations(LRFD)[3].Factors.Map()
	assert.Equal(t, 1.2, factors["D"])
	assert.Equal(t, 1.6, factors["R"])
	assert.Equal(t, 1.6, factors["PR"])
	assert.Equal(t, 0.0, factors["PS"])
}

func TestCombinationsReturnCopies(t *testing.T) {
	combos := Combinations(ASD)
	combos[0].Factors[0] = 99
	combos[0].Name = "changed"

	fresh := Combinations(ASD)
	assert.Equal(t, "1.0D+1.0Lr", fresh[0].Name)
	assert.Equal(t, 1.0, fresh[0].Factors[0])
}

func TestRainHelpers(t *testing.T) {
	assert.InDelta(t, 5.2, RainLoad(1), 1e-12)
	assert.InDelta(t, 0.0, RainLoad(0), 1e-12)
	// 10,000 ft² at 3 in/h
	assert.InDelta(t, 312.0, FlowRate(10000, 3), 1e-9)
}
