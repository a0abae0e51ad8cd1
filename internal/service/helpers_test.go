package service

import (
	"testing"
	"time"

	"github.com/edunexus/schoolhub/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckRoleBranch(t *testing.T) {
	branch := 2
	assert.NoError(t, checkRoleBranch(model.RoleSuperadmin, nil))
	assert.ErrorIs(t, checkRoleBranch(model.RoleSuperadmin, &branch), ErrInvalidValue)
	assert.NoError(t, checkRoleBranch(model.RolePrincipal, &branch))
	assert.ErrorIs(t, checkRoleBranch(model.RoleParent, nil), ErrInvalidValue)
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("Saturday, sun")
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, days)

	_, err = parseWeekdays("Funday")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestValidateSetting(t *testing.T) {
	assert.NoError(t, validateSetting(model.SettingLibraryFine, "250"))
	assert.Error(t, validateSetting(model.SettingLibraryFine, "-1"))
	assert.Error(t, validateSetting(model.SettingLibraryFine, "ten"))
	assert.NoError(t, validateSetting(model.SettingWeeklyHoliday, "Friday"))
	assert.NoError(t, validateSetting(model.SettingSchoolName, "anything"))
}

func TestStaffFromRequest_DefaultsSubjects(t *testing.T) {
	st := staffFromRequest(1, model.StaffRequest{EmployeeNo: "E1", Name: "Ravi", Designation: "Clerk"})
	assert.NotNil(t, st.Subjects)
	assert.Empty(t, st.Subjects)
	assert.Nil(t, st.JoinedOn)
}

func TestAmountMatches(t *testing.T) {
	assert.True(t, amountMatches("150000.00", 150000))
	assert.True(t, amountMatches("150000", 150000))
	assert.False(t, amountMatches("149999.00", 150000))
	assert.False(t, amountMatches("abc", 150000))
}
