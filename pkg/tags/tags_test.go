package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Boss":           "boss",
		"  fire damage ": "fire-damage",
		"Enemy/Undead":   "enemy/undead",
		"rare!":          "rare",
		"level_10":       "level10",
	}

	for input, want := range tests {
		assert.Equal(t, want, Normalize(input), input)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("enemy/undead"))
	assert.NoError(t, Validate("Fire Damage"))
	assert.ErrorIs(t, Validate(" "), ErrEmptyTag)
	assert.ErrorIs(t, Validate("rare!"), ErrInvalidTagChars)

	long := make([]byte, MaxLength+1)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, Validate(string(long)), ErrTagTooLong)
}

func TestHierarchy(t *testing.T) {
	assert.Equal(t, "enemy/undead", Parent("enemy/undead/lich"))
	assert.Equal(t, "", Parent("boss"))
	assert.Equal(t, "lich", Leaf("enemy/undead/lich"))
	assert.Equal(t, "boss", Leaf("boss"))

	assert.True(t, Matches("enemy/undead", "Enemy"))
	assert.True(t, Matches("boss", "boss"))
	assert.False(t, Matches("enemyship", "enemy"))
}

func TestAddAndRemove(t *testing.T) {
	list := []string{"boss"}

	list = Add(list, "Fire Damage")
	assert.Equal(t, []string{"boss", "fire-damage"}, list)
	assert.Equal(t, list, Add(list, "BOSS"))

	assert.Equal(t, []string{"fire-damage"}, Remove(list, "Boss"))
	assert.Equal(t, []string{}, Remove([]string{"boss"}, "boss"))
}

func TestCountUsage(t *testing.T) {
	usage := CountUsage([][]string{
		{"boss", "undead"},
		{"Undead", "undead"},
		{"flying"},
		nil,
	})

	assert.Equal(t, []Usage{
		{Tag: "undead", Count: 2},
		{Tag: "boss", Count: 1},
		{Tag: "flying", Count: 1},
	}, usage)
}

func TestColorIsStable(t *testing.T) {
	assert.Equal(t, Color("boss"), Color("Boss"))
	assert.Contains(t, Palette, Color("undead"))
}
