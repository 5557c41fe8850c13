package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salesflow-api/internal/domain"
	"github.com/jhoicas/salesflow-api/internal/domain/entity"
	"github.com/jhoicas/salesflow-api/internal/domain/repository"
)

func invite(email string) *entity.InvitedEmail {
	now := time.Now().UTC()
	return &entity.InvitedEmail{ID: "inv-" + email, OrganizationID: "org-1", Email: email, CreatedAt: now, UpdatedAt: now}
}

func TestRunInvite_RollbackSoloDeLoModificado(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Invites().Create(ctx, invite("otro@acme.com")))

	err := NewTxRunner(s).RunInvite(ctx, func(invites repository.InviteRepository) error {
		require.NoError(t, invites.Create(ctx, invite("nuevo@acme.com")))
		// Un registro concurrente consume otra invitación fuera de la transacción.
		require.NoError(t, s.Invites().MarkUsed(ctx, "otro@acme.com"))
		return errors.New("canal caído")
	})
	require.Error(t, err)

	nuevo, err := s.Invites().GetByEmail(ctx, "nuevo@acme.com")
	require.NoError(t, err)
	assert.Nil(t, nuevo, "la invitación de la transacción se descarta")

	otro, err := s.Invites().GetByEmail(ctx, "otro@acme.com")
	require.NoError(t, err)
	require.NotNil(t, otro)
	assert.True(t, otro.IsUsed, "el MarkUsed ajeno no se revierte")
}

func TestRunInvite_RollbackRestauraInvitacionRearmada(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Invites().Create(ctx, invite("c@acme.com")))
	require.NoError(t, s.Invites().MarkUsed(ctx, "c@acme.com"))

	err := NewTxRunner(s).RunInvite(ctx, func(invites repository.InviteRepository) error {
		require.NoError(t, invites.Rearm(ctx, invite("c@acme.com")))
		return errors.New("canal caído")
	})
	require.Error(t, err)

	got, err := s.Invites().GetByEmail(ctx, "c@acme.com")
	require.NoError(t, err)
	assert.True(t, got.IsUsed)
}

func TestRearm_Errores(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	assert.ErrorIs(t, s.Invites().Rearm(ctx, invite("nadie@acme.com")), domain.ErrNotInvited)

	require.NoError(t, s.Invites().Create(ctx, invite("p@acme.com")))
	assert.ErrorIs(t, s.Invites().Rearm(ctx, invite("p@acme.com")), domain.ErrAlreadyInvited)
}
