package authz

// Role is one of the four fixed roles. The enumeration is closed: there is
// no dynamic role creation and no runtime mutation of the permission table.
type Role string

const (
	RoleSuperUser      Role = "super_user"
	RoleMedicalUser    Role = "medical_user"
	RoleAdministrative Role = "administrative"
	RoleNursing        Role = "nursing"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperUser, RoleMedicalUser, RoleAdministrative, RoleNursing:
		return true
	}
	return false
}

// Module names a protected resource area.
type Module string

const (
	ModulePatients      Module = "patients"
	ModuleAppointments  Module = "appointments"
	ModuleClinicalNotes Module = "clinical_notes"
	ModuleEvolutions    Module = "evolutions"
	ModulePrescriptions Module = "prescriptions"
	ModuleRIPS          Module = "rips"
	ModuleUsers         Module = "users"
	ModuleSpecialties   Module = "specialties"
	ModuleDiagnoses     Module = "diagnoses"
	ModuleDocuments     Module = "documents"
)

// Action names an operation on a module.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type roleSet map[Role]struct{}

func roles(rs ...Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

var (
	all      = roles(RoleSuperUser, RoleMedicalUser, RoleAdministrative, RoleNursing)
	clinical = roles(RoleSuperUser, RoleMedicalUser, RoleNursing)
	managers = roles(RoleSuperUser, RoleMedicalUser, RoleAdministrative)
	medical  = roles(RoleSuperUser, RoleMedicalUser)
	admin    = roles(RoleSuperUser, RoleAdministrative)
	super    = roles(RoleSuperUser)
)

// permissions is the process-wide authorization policy, keyed by
// (module, action). It is initialized once and never mutated; any
// (module, action) pair absent from it is denied.
var permissions = map[Module]map[Action]roleSet{
	ModulePatients: {
		ActionCreate: managers,
		ActionRead:   all,
		ActionUpdate: managers,
		ActionDelete: super,
	},
	ModuleAppointments: {
		ActionCreate: managers,
		ActionRead:   all,
		ActionUpdate: managers,
		ActionDelete: admin,
	},
	ModuleClinicalNotes: {
		ActionCreate: medical,
		ActionRead:   clinical,
		ActionUpdate: medical,
		ActionDelete: super,
	},
	ModuleEvolutions: {
		ActionCreate: clinical,
		ActionRead:   clinical,
		ActionUpdate: clinical,
		ActionDelete: super,
	},
	ModulePrescriptions: {
		ActionCreate: medical,
		ActionRead:   clinical,
		ActionUpdate: medical,
		ActionDelete: super,
	},
	ModuleRIPS: {
		ActionCreate: admin,
		ActionRead:   admin,
		ActionUpdate: admin,
		ActionDelete: super,
	},
	ModuleUsers: {
		ActionCreate: super,
		ActionRead:   admin,
		ActionUpdate: super,
		ActionDelete: super,
	},
	ModuleSpecialties: {
		ActionCreate: super,
		ActionRead:   all,
		ActionUpdate: super,
		ActionDelete: super,
	},
	ModuleDiagnoses: {
		ActionCreate: medical,
		ActionRead:   all,
		ActionUpdate: medical,
		ActionDelete: super,
	},
	ModuleDocuments: {
		ActionCreate: all,
		ActionRead:   all,
		ActionUpdate: super,
		ActionDelete: super,
	},
}

// Allowed reports whether the role may perform the action on the module.
// Absent entries deny.
func Allowed(role Role, module Module, action Action) bool {
	actions, ok := permissions[module]
	if !ok {
		return false
	}
	set, ok := actions[action]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}
