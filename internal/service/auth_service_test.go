package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/edunexus/schoolhub/internal/config"
	"github.com/edunexus/schoolhub/internal/model"
	"github.com/edunexus/schoolhub/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*AuthService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiry: time.Hour, BcryptCost: 4}
	return NewAuthService(cfg, nil, session.NewRedisStore(rdb), zerolog.Nop()), mr
}

func teacherUser() *model.User {
	branch, staff := 3, 12
	return &model.User{ID: 7, BranchID: &branch, Name: "Meera", Email: "meera@school.test", Role: model.RoleTeacher, StaffID: &staff, IsActive: true}
}

func TestOpenSession_TokenCarriesClaims(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	res, err := svc.openSession(ctx, teacherUser())
	require.NoError(t, err)
	assert.Equal(t, "Meera", res.User.Name)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, 3, claims.BranchID)
	assert.Equal(t, model.RoleTeacher, claims.Role)
	require.NotNil(t, claims.StaffID)
	assert.Equal(t, 12, *claims.StaffID)
	assert.True(t, claims.Can(model.PermissionAttendanceMark))
	assert.False(t, claims.Can(model.PermissionFeesManage))

	sess, err := svc.ValidateSession(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, res.Token, sess.Token)
}

func TestLogout_EndsSession(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	res, err := svc.openSession(ctx, teacherUser())
	require.NoError(t, err)
	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))
	_, err = svc.ValidateSession(ctx, claims)
	assert.ErrorIs(t, err, ErrSessionEnded)
}

func TestEndUserSessions(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	first, err := svc.openSession(ctx, teacherUser())
	require.NoError(t, err)
	second, err := svc.openSession(ctx, teacherUser())
	require.NoError(t, err)

	require.NoError(t, svc.EndUserSessions(ctx, 7))
	for _, tok := range []string{first.Token, second.Token} {
		claims, err := svc.ValidateToken(tok)
		require.NoError(t, err)
		_, err = svc.ValidateSession(ctx, claims)
		assert.ErrorIs(t, err, ErrSessionEnded)
	}
}

func TestValidateToken_RejectsForeignSignature(t *testing.T) {
	svc, _ := newTestAuth(t)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, Role: model.RoleSuperadmin})
	signed, err := forged.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(signed)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	svc, _ := newTestAuth(t)

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NoError(t, svc.CheckPassword(hash, "correct horse"))
	assert.ErrorIs(t, svc.CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}
