package block

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPopulatesEverySchemaOption(t *testing.T) {
	for _, k := range Kinds() {
		cfg := DefaultConfig(k)
		schema := Schema(k)
		require.Len(t, cfg, len(schema), "kind %s", k)
		for _, o := range schema {
			assert.Equal(t, o.Default, cfg[o.Name], "kind %s option %s", k, o.Name)
		}
	}
}

func TestDefaults(t *testing.T) {
	g := DefaultConfig(Group)
	assert.Equal(t, 4, g.Int("group_count"))
	assert.Equal(t, 4, g.Int("teams_per_group"))
	assert.Equal(t, 2, g.Int("advance_count"))
	assert.False(t, g.Bool("round_robin"))

	de := DefaultConfig(DoubleElimination)
	assert.Equal(t, 16, de.Int("team_count"))
	assert.True(t, de.Bool("seeded"))
	assert.True(t, de.Bool("grand_final_reset"))

	se := DefaultConfig(SingleElimination)
	_, hasReset := se["grand_final_reset"]
	assert.False(t, hasReset, "single elimination must not carry grand_final_reset")

	l := DefaultConfig(Ladder)
	assert.Equal(t, 20, l.Int("team_count"))
	assert.Equal(t, 7, l.Int("challenge_window_days"))
	assert.Equal(t, 3, l.Int("max_challenge_range"))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Group Stage", Label(Group))
	assert.Equal(t, "Swiss System", Label(Swiss))
	assert.Equal(t, "mystery", Label(Kind("mystery")))
}

func TestValid(t *testing.T) {
	assert.True(t, RoundRobin.Valid())
	assert.False(t, Kind("knockout").Valid())
}

func TestNormalizeCoercesAndClamps(t *testing.T) {
	cfg := Normalize(Group, map[string]any{
		"group_count":     float64(40),
		"teams_per_group": float64(3),
		"advance_count":   float64(6),
		"round_robin":     true,
		"colour":          "blue",
	})

	assert.Equal(t, Config{
		"group_count":     16,
		"teams_per_group": 3,
		"advance_count":   3,
		"round_robin":     true,
	}, cfg)
}

func TestNormalizeSaturatesHugeNumbers(t *testing.T) {
	cfg := Normalize(Swiss, map[string]any{
		"team_count": 1e20,
		"rounds":     -1e20,
	})
	assert.Equal(t, 64, cfg["team_count"])
	assert.Equal(t, 3, cfg["rounds"])

	cfg = Normalize(Ladder, map[string]any{
		"team_count":            json.Number("1e300"),
		"challenge_window_days": math.Inf(1),
		"max_challenge_range":   math.NaN(),
	})
	assert.Equal(t, 100, cfg["team_count"])
	assert.Equal(t, 30, cfg["challenge_window_days"])
	assert.Equal(t, 3, cfg["max_challenge_range"])
}

func TestNormalizeFillsDefaultsForMissingOrWrongTypes(t *testing.T) {
	cfg := Normalize(Swiss, map[string]any{
		"rounds":              "seven",
		"accelerated_pairing": "yes",
	})
	assert.Equal(t, DefaultConfig(Swiss), cfg)

	assert.Equal(t, DefaultConfig(Ladder), Normalize(Ladder, nil))
}

func TestOptionBoundsFollowsMaxFrom(t *testing.T) {
	opt, ok := Lookup(Group, "advance_count")
	require.True(t, ok)

	lo, hi := opt.Bounds(Config{"teams_per_group": 5})
	assert.Equal(t, 1, lo)
	assert.Equal(t, 5, hi)

	assert.Equal(t, 5, opt.Clamp(9, Config{"teams_per_group": 5}))
	assert.Equal(t, 1, opt.Clamp(-2, Config{"teams_per_group": 5}))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"group", Group},
		{"Single-Elimination", SingleElimination},
		{"round robin", RoundRobin},
		{"Swiss System", Swiss},
		{" LADDER ", Ladder},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("knockout")
	assert.Error(t, err)
}

func TestLookupKindFuzzy(t *testing.T) {
	k, err := LookupKind("swis")
	require.NoError(t, err)
	assert.Equal(t, Swiss, k)

	k, err = LookupKind("ladder")
	require.NoError(t, err)
	assert.Equal(t, Ladder, k)

	_, err = LookupKind("zzz")
	assert.Error(t, err)
}

func TestConfigCloneIsIndependent(t *testing.T) {
	cfg := DefaultConfig(RoundRobin)
	c := cfg.Clone()
	c["team_count"] = 12
	assert.Equal(t, 8, cfg.Int("team_count"))
	assert.Equal(t, "double_round_robin=false team_count=8", cfg.String())
}
