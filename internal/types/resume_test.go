package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_WithProfile(t *testing.T) {
	p := NewNormalizedProfile()
	p.Name = "Asha Rao"
	p.Email = "asha@example.com"
	p.PortfolioURL = "asha.dev"
	p.Location = "Pune"

	c := Contact{Name: "A. Rao", Email: "  "}.WithProfile(p)

	assert.Equal(t, "A. Rao", c.Name)
	assert.Equal(t, "asha@example.com", c.Email)
	assert.Equal(t, "asha.dev", c.Portfolio)
	assert.Equal(t, "Pune", c.Location)
	assert.Empty(t, c.Phone)
}

func TestContact_WithNilProfile(t *testing.T) {
	c := Contact{Name: "Asha"}

	assert.Equal(t, c, c.WithProfile(nil))
}

func TestContact_IsZero(t *testing.T) {
	assert.True(t, Contact{}.IsZero())
	assert.False(t, Contact{Phone: "1"}.IsZero())
}

func TestNewGeneratedResume_EncodesEmptyCollections(t *testing.T) {
	data, err := json.Marshal(NewGeneratedResume())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	for _, key := range []string{"experience", "education", "projects", "awards", "achievements", "softSkills"} {
		assert.Equal(t, []any{}, m[key], key)
	}
}
