package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/folio/internal/auth"
	"github.com/yoockh/folio/internal/models"
	"github.com/yoockh/folio/internal/repositories/memory"
	"github.com/yoockh/folio/internal/utils"
)

func newAuthSvc() (AuthService, *auth.Tokens) {
	tokens := auth.NewTokens("test-secret", time.Hour, "portfolio-api")
	return NewAuthService(memory.NewUserRepo(), tokens), tokens
}

func TestAuth_FirstUserIsAdmin(t *testing.T) {
	svc, _ := newAuthSvc()
	ctx := context.Background()

	first, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "Ann@Example.com", Password: "password1"})
	require.NoError(t, err)
	assert.True(t, first.HasRole(models.RoleAdmin))
	assert.Equal(t, "ann@example.com", first.Email)
	assert.NotEqual(t, "password1", first.PasswordHash)

	second, err := svc.Register(ctx, RegisterInput{Name: "Bob", Email: "bob@example.com", Password: "password2"})
	require.NoError(t, err)
	assert.False(t, second.HasRole(models.RoleAdmin))
	assert.True(t, second.HasRole(models.RoleUser))

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann 2", Email: "ann@example.com", Password: "password3"})
	assert.True(t, utils.IsCode(err, utils.CodeConflict))
}

func TestAuth_RegisterValidates(t *testing.T) {
	svc, _ := newAuthSvc()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "nope", Password: "password1"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))

	_, err = svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "short"})
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestAuth_LoginAndMe(t *testing.T) {
	svc, tokens := newAuthSvc()
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)

	sess, err := svc.Login(ctx, LoginInput{Email: "ANN@example.com", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, sess.User.ID)

	claims, err := tokens.Parse(sess.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.Subject)
	assert.True(t, claims.HasRole(models.RoleAdmin))

	me, err := svc.Me(ctx, claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, "Ann", me.Name)

	_, err = svc.Login(ctx, LoginInput{Email: "ann@example.com", Password: "wrong-password"})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "password1"})
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))

	_, err = svc.Me(ctx, "missing")
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}
