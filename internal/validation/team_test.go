package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTeamName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "pwn_wizards", false},
		{"Mixed Case And Dash", "Team-42", false},
		{"Short", "ab", false},
		{"Inner Spaces And Symbols", "red team @ 1337!", false},
		{"Unicode", "équipe", false},
		{"Route Words", "requests", false},
		{"Max Length", strings.Repeat("é", MaxTeamNameLength), false},
		{"Empty", "", true},
		{"Blank", "   ", true},
		{"Too Long", strings.Repeat("a", MaxTeamNameLength+1), true},
		{"Leading Space", " red", true},
		{"Trailing Space", "red ", true},
		{"Slash", "red/team", true},
		{"Dot Segment", "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTeamName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateUsername("yait-nas"))
	assert.NoError(t, ValidateUsername("bob_99"))
	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("this_name_is_way_too_long"))
	assert.Error(t, ValidateUsername("bad name"))
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateDescription(""))
	assert.NoError(t, ValidateDescription(strings.Repeat("é", MaxDescriptionLength)))
	assert.Error(t, ValidateDescription(strings.Repeat("x", MaxDescriptionLength+1)))
}
