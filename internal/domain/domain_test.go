package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitations(t *testing.T) {
	lim, err := ParseLimitations(map[string][]string{
		"3":  {"shift1", "Shift 3", "shift1"},
		" 7": {"shift2"},
		"9":  {},
	})
	require.NoError(t, err)
	assert.Equal(t, Limitations{3: {Shift1, Shift3}, 7: {Shift2}}, lim)
}

func TestParseLimitationsRejectsBadInput(t *testing.T) {
	cases := map[string]map[string][]string{
		"non numeric day": {"x": {"shift1"}},
		"day zero":        {"0": {"shift1"}},
		"day too large":   {"32": {"shift1"}},
		"unknown shift":   {"4": {"shift4"}},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLimitations(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidLimitation))
		})
	}
}

func TestLimitationsDecodeFromStringKeys(t *testing.T) {
	var e Engineer
	require.NoError(t, json.Unmarshal([]byte(`{"name":"B","workplaces":["X"],"limitations":{"3":["shift1"]}}`), &e))
	assert.True(t, e.Blocked(3, Shift1))
	assert.False(t, e.Blocked(3, Shift2))
	assert.False(t, e.Blocked(4, Shift1))
	assert.True(t, e.CanWork("X"))
	assert.False(t, e.CanWork("Y"))
}

func TestGridSetGetClear(t *testing.T) {
	g := Grid{}
	g.Set("X", 1, Shift1, "A")
	g.Set("X", 1, Shift2, "B")
	assert.Equal(t, "A", g.Get("X", 1, Shift1))
	assert.Equal(t, "", g.Get("Y", 1, Shift1))
	assert.Equal(t, 2, g.Filled())

	g.Set("X", 1, Shift1, "")
	assert.Equal(t, "", g.Get("X", 1, Shift1))
	g.Clear("X", 1, Shift2)
	_, ok := g["X"][1]
	assert.False(t, ok)
}

func TestGridCloneIsDeep(t *testing.T) {
	g := Grid{"X": {1: {Shift1: "A", Shift2: ""}}}
	c := g.Clone()
	c.Set("X", 1, Shift1, "B")
	assert.Equal(t, "A", g.Get("X", 1, Shift1))
	assert.Equal(t, 1, c.Filled())
	_, hasEmpty := c["X"][1][Shift2]
	assert.False(t, hasEmpty)
}

func TestGridJSONShape(t *testing.T) {
	g := Grid{"Nodal": {5: {Shift2: "C"}}}
	raw, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Nodal":{"5":{"shift2":"C"}}}`, string(raw))

	var back Grid
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "C", back.Get("Nodal", 5, Shift2))
}

func TestPeriod(t *testing.T) {
	assert.NoError(t, Period{Year: 2024, Month: 2}.Validate())
	assert.Error(t, Period{Year: 2024, Month: 13}.Validate())
	assert.Error(t, Period{Year: 10, Month: 1}.Validate())
	assert.Equal(t, "2024-2", Period{Year: 2024, Month: 2}.Key())
}

func TestParseShift(t *testing.T) {
	s, ok := ParseShift("Shift 2")
	assert.True(t, ok)
	assert.Equal(t, Shift2, s)
	assert.Equal(t, "Shift 2", s.Label())
	_, ok = ParseShift("night")
	assert.False(t, ok)
}

func TestResolveWorkplace(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Studio Hispan", "Studio Hispan", true},
		{"studio-hispan", "Studio Hispan", true},
		{"engineer room", "Engineer Room", true},
		{"NODAL", "Nodal", true},
		{"basement", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ResolveWorkplace(tt.in, DefaultWorkplaces)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "engineer-room", WorkplaceSlug("Engineer  Room"))
}

func TestResolveWorkplaceFoldsCase(t *testing.T) {
	known := []string{"Straße", "Café Ost"}
	for in, want := range map[string]string{
		"STRASSE":  "Straße",
		"strasse":  "Straße",
		"café-ost": "Café Ost",
		"CAFÉ OST": "Café Ost",
		" Straße ": "Straße",
	} {
		got, ok := ResolveWorkplace(in, known)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ResolveWorkplace("strase", known)
	assert.False(t, ok)
	assert.Equal(t, "strasse", WorkplaceSlug("Straße"))
}
