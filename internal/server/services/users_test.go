package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mywallet/internal/common"
	"github.com/dmitrijs2005/mywallet/internal/cryptox"
	"github.com/dmitrijs2005/mywallet/internal/server/auth"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mywallet/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingHashUsers struct {
	users.Repository
}

func (failingHashUsers) UpdateHash(context.Context, string, string) (bool, error) {
	return false, errors.New("disk full")
}

type stubManager struct {
	repomanager.RepositoryManager
	users users.Repository
}

func (m stubManager) Users() users.Repository { return m.users }

func newUserServiceFor(t *testing.T, m repomanager.RepositoryManager, iterations int) *UserService {
	t.Helper()
	log, _ := newTestLogger(t)
	return NewUserService(m, cryptox.NewPasswordHasher(iterations), newTestConfig(), log)
}

func TestUserService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	s := newUserServiceFor(t, m, testIterations)

	u, err := s.Register(ctx, "  Alice ", "Alice@Example.com ", "secret1")
	require.NoError(t, err)
	require.NotNil(t, u)

	_, err = uuid.Parse(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotContains(t, u.Hash, "secret1")

	stored, err := m.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, u.Hash, stored.Hash)

	token, err := s.Login(ctx, "alice@example.com", "secret1")
	require.NoError(t, err)

	id, err := auth.GetUserIDFromToken(token, []byte("k"))
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	me, err := s.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestUserService_RegisterValidation(t *testing.T) {
	s := newUserServiceFor(t, newManager(t), testIterations)

	tests := []struct {
		name, user, email, password string
	}{
		{name: "empty name", user: " ", email: "a@b.c", password: "secret1"},
		{name: "long name", user: strings.Repeat("n", 101), email: "a@b.c", password: "secret1"},
		{name: "empty email", user: "a", email: "", password: "secret1"},
		{name: "malformed email", user: "a", email: "not-an-email", password: "secret1"},
		{name: "display name email", user: "a", email: "Bob <bob@example.com>", password: "secret1"},
		{name: "long email", user: "a", email: strings.Repeat("e", 250) + "@b.com", password: "secret1"},
		{name: "short password", user: "a", email: "a@b.c", password: "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Register(context.Background(), tt.user, tt.email, tt.password)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}
}

func TestUserService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	s := newUserServiceFor(t, m, testIterations)

	_, err := s.Register(ctx, "A", "dup@example.com", "secret1")
	require.NoError(t, err)

	_, err = s.Register(ctx, "B", "DUP@example.com", "secret2")
	assert.ErrorIs(t, err, common.ErrDuplicateKey)

	n, err := m.Users().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestUserService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	s := newUserServiceFor(t, newManager(t), testIterations)

	_, err := s.Register(ctx, "A", "a@example.com", "secret1")
	require.NoError(t, err)

	_, err = s.Login(ctx, "a@example.com", "wrong-one")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_LoginMalformedHash(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	s := newUserServiceFor(t, m, testIterations)

	u, err := s.Register(ctx, "A", "a@example.com", "secret1")
	require.NoError(t, err)

	ok, err := m.Users().UpdateHash(ctx, u.ID, "garbage")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = s.Login(ctx, "a@example.com", "secret1")
	assert.ErrorIs(t, err, common.ErrMalformedCredential)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_LoginUpgradesHash(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	old := newUserServiceFor(t, m, testIterations)
	u, err := old.Register(ctx, "A", "a@example.com", "secret1")
	require.NoError(t, err)

	current := newUserServiceFor(t, m, 2*testIterations)
	_, err = current.Login(ctx, "a@example.com", "secret1")
	require.NoError(t, err)

	stored, err := m.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, u.Hash, stored.Hash)
	assert.True(t, strings.HasPrefix(stored.Hash, "2000."))

	matched, needsUpgrade, err := cryptox.NewPasswordHasher(2 * testIterations).Verify(stored.Hash, "secret1")
	require.NoError(t, err)
	assert.True(t, matched)
	assert.False(t, needsUpgrade)
}

func TestUserService_LoginSucceedsWhenUpgradeFails(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	u, err := newUserServiceFor(t, m, testIterations).Register(ctx, "A", "a@example.com", "secret1")
	require.NoError(t, err)

	log, buf := newTestLogger(t)
	s := NewUserService(stubManager{RepositoryManager: m, users: failingHashUsers{m.Users()}},
		cryptox.NewPasswordHasher(2*testIterations), newTestConfig(), log)

	_, err = s.Login(ctx, "a@example.com", "secret1")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "credential hash upgrade failed")

	stored, err := m.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Hash, stored.Hash)
}

func TestUserService_Authenticate_UnknownUser(t *testing.T) {
	s := newUserServiceFor(t, newManager(t), testIterations)

	token, err := auth.GenerateToken(uuid.NewString(), []byte("k"), time.Hour)
	require.NoError(t, err)
	_, err = s.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Authenticate(context.Background(), "junk")
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserService_RenameAndList(t *testing.T) {
	ctx := context.Background()
	s := newUserServiceFor(t, newManager(t), testIterations)

	b, err := s.Register(ctx, "B", "b@example.com", "secret1")
	require.NoError(t, err)
	_, err = s.Register(ctx, "A", "a@example.com", "secret1")
	require.NoError(t, err)

	require.NoError(t, s.Rename(ctx, b.ID, "Bee"))
	assert.ErrorIs(t, s.Rename(ctx, b.ID, ""), common.ErrorValidation)
	assert.ErrorIs(t, s.Rename(ctx, "missing", "X"), common.ErrorNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a@example.com", all[0].Email)
	assert.Equal(t, "Bee", all[1].Name)
	assert.Equal(t, b.Hash, all[1].Hash)
}
