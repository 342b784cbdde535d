package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileRules_Profile(t *testing.T) {
	rules := DefaultProfileRules()

	assert.True(t, rules.Profile("sam", "De Anza", "CS").Valid())

	errs := rules.Profile("ab", " ", "X")
	assert.Equal(t, []string{FieldCollegeMajor, FieldCommunityCollege, FieldUsername}, errs.Fields())
	assert.Equal(t, "Community college is required", errs[FieldCommunityCollege])
	assert.Equal(t, "Username must be at least 3 characters", errs[FieldUsername])
}
