package postgres

import (
	"errors"

	"github.com/lib/pq"

	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

const uniqueViolation = "23505"

// duplicateKinds maps unique-index names to the error kind the guard layer
// reports. The indexes are the storage-level backstop for the
// check-then-write race: two concurrent inserts both passing the advisory
// uniqueness check degrade to a clean conflict here instead of corruption.
var duplicateKinds = map[string]apperror.Kind{
	"patients_identification_idx": apperror.KindDuplicateIdentity,
	"users_email_idx":             apperror.KindDuplicateIdentity,
	"diagnoses_code_idx":          apperror.KindDuplicateCode,
	"specialties_name_idx":        apperror.KindDuplicateName,
}

// translateUnique rewrites a unique-violation driver error into the
// corresponding duplicate kind; other errors pass through untouched.
func translateUnique(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		if kind, ok := duplicateKinds[pqErr.Constraint]; ok {
			return apperror.Wrap(kind, "duplicate value for "+pqErr.Constraint, err)
		}
		return apperror.Wrap(apperror.KindDuplicateIdentity, "duplicate value", err)
	}
	return err
}
