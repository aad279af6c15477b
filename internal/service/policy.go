package service

import (
	"context"

	"github.com/noah-isme/attendance-bridge/internal/models"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

// Authorization decisions live here so every mutating operation applies the
// same rules instead of scattering checks across the facade.

type ownershipChecker interface {
	OwnedBy(ctx context.Context, id, teacherID string) (bool, error)
}

// requireAdmin gates section writes to administrator callers.
func requireAdmin(role models.UserRole) error {
	if role != models.RoleAdmin {
		return appErrors.Clone(appErrors.ErrUnauthorized, "only admins can manage sections")
	}
	return nil
}

// requireOwnership fails with the shared access-denied message when the
// student does not exist or belongs to another teacher. The two cases are
// deliberately indistinguishable to the caller.
func requireOwnership(ctx context.Context, students ownershipChecker, studentID, teacherID string) error {
	owned, err := students.OwnedBy(ctx, studentID, teacherID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify student ownership")
	}
	if !owned {
		return appErrors.Clone(appErrors.ErrUnauthorized, "student not found or access denied")
	}
	return nil
}
