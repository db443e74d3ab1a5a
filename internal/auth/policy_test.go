package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/tour-backoffice/internal/domain"
)

func TestPolicyManagerOperations(t *testing.T) {
	assert.True(t, Allowed(OpRangeMy, domain.RoleManager))
	assert.True(t, Allowed(OpTicketSell, domain.RoleManager))

	assert.False(t, Allowed(OpRangeMy, domain.RoleOwner))
	assert.False(t, Allowed(OpTicketSell, domain.RolePromoter))
}

func TestPolicyOwnerOnlyResets(t *testing.T) {
	for _, op := range []Operation{OpUserResetBalance, OpUserResetDebt} {
		assert.True(t, Allowed(op, domain.RoleOwner), "op %s", op)
		for _, role := range []domain.Role{domain.RoleAssistant, domain.RoleManager, domain.RolePromoter} {
			assert.False(t, Allowed(op, role), "op %s role %s", op, role)
		}
	}
}

func TestPolicyRangeAssignment(t *testing.T) {
	assert.True(t, Allowed(OpRangeAssign, domain.RoleOwner))
	assert.True(t, Allowed(OpRangeAssign, domain.RoleAssistant))
	assert.False(t, Allowed(OpRangeAssign, domain.RoleManager))
}

func TestPolicyUnknownOperationDeniesAll(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleOwner, domain.RoleAssistant, domain.RoleManager, domain.RolePromoter} {
		assert.False(t, Allowed(Operation("nonexistent"), role))
	}
}

func TestEveryOperationHasAtLeastOneRole(t *testing.T) {
	for op, roles := range policy {
		require.NotEmpty(t, roles, "op %s", op)
	}
}

func TestAllowedRolesMatchesTable(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleOwner}, AllowedRoles(OpUserResetDebt))
	assert.Empty(t, AllowedRoles(Operation("nonexistent")))
}
