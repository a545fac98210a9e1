package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		module Module
		action Action
		want   bool
	}{
		{"super user can delete patients", RoleSuperUser, ModulePatients, ActionDelete, true},
		{"medical user cannot delete patients", RoleMedicalUser, ModulePatients, ActionDelete, false},
		{"administrative can create patients", RoleAdministrative, ModulePatients, ActionCreate, true},
		{"nursing can read patients", RoleNursing, ModulePatients, ActionRead, true},
		{"nursing cannot create patients", RoleNursing, ModulePatients, ActionCreate, false},
		{"administrative cannot read clinical notes", RoleAdministrative, ModuleClinicalNotes, ActionRead, false},
		{"nursing can read clinical notes", RoleNursing, ModuleClinicalNotes, ActionRead, true},
		{"nursing cannot create clinical notes", RoleNursing, ModuleClinicalNotes, ActionCreate, false},
		{"nursing can create evolutions", RoleNursing, ModuleEvolutions, ActionCreate, true},
		{"medical user can create prescriptions", RoleMedicalUser, ModulePrescriptions, ActionCreate, true},
		{"nursing cannot create prescriptions", RoleNursing, ModulePrescriptions, ActionCreate, false},
		{"administrative can create rips", RoleAdministrative, ModuleRIPS, ActionCreate, true},
		{"medical user cannot read rips", RoleMedicalUser, ModuleRIPS, ActionRead, false},
		{"only super user creates users", RoleAdministrative, ModuleUsers, ActionCreate, false},
		{"super user creates users", RoleSuperUser, ModuleUsers, ActionCreate, true},
		{"administrative can list users", RoleAdministrative, ModuleUsers, ActionRead, true},
		{"medical user can create diagnoses", RoleMedicalUser, ModuleDiagnoses, ActionCreate, true},
		{"everyone reads specialties", RoleNursing, ModuleSpecialties, ActionRead, true},
		{"only super user deletes appointments or admin", RoleNursing, ModuleAppointments, ActionDelete, false},
		{"administrative deletes appointments", RoleAdministrative, ModuleAppointments, ActionDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allowed(tt.role, tt.module, tt.action))
		})
	}
}

func TestAllowedFailsClosed(t *testing.T) {
	// anything outside the table denies, whatever the role
	assert.False(t, Allowed(RoleSuperUser, Module("reports"), ActionRead))
	assert.False(t, Allowed(RoleSuperUser, ModulePatients, Action("export")))
	assert.False(t, Allowed(Role("auditor"), ModulePatients, ActionRead))
	assert.False(t, Allowed("", "", ""))
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleSuperUser, RoleMedicalUser, RoleAdministrative, RoleNursing} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("admin").Valid())
	assert.False(t, Role("").Valid())
}
