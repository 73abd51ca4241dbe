package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy(t *testing.T) {
	admin := &Principal{UserID: "a", Role: RoleAdmin}
	customer := &Principal{UserID: "c", Role: RoleUser}

	cases := []struct {
		policy    Policy
		principal *Principal
		want      error
	}{
		{PolicyPublic, nil, nil},
		{PolicyAuthenticated, nil, ErrUnauthorized},
		{PolicyAuthenticated, customer, nil},
		{PolicyAdmin, nil, ErrUnauthorized},
		{PolicyAdmin, customer, ErrForbidden},
		{PolicyAdmin, admin, nil},
	}

	for _, tc := range cases {
		err := tc.policy.Check(tc.principal)
		if tc.want == nil {
			assert.NoError(t, err, "%s", tc.policy)
		} else {
			assert.ErrorIs(t, err, tc.want, "%s", tc.policy)
		}
	}
}

func TestPrincipalContext(t *testing.T) {
	assert.Nil(t, PrincipalFrom(context.Background()))

	p := &Principal{UserID: "u-1", Role: RoleUser}
	ctx := WithPrincipal(context.Background(), p)
	assert.Same(t, p, PrincipalFrom(ctx))
}
