package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/RogansDev/romedicals-api/internal/authz"
	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
	"github.com/RogansDev/romedicals-api/pkg/token"
)

const identityKey = "identity"

// userCacheTTL bounds how stale the active flag can be between token
// verifications; a deactivated account is shut out within this window.
const userCacheTTL = 30 * time.Second

type AuthMiddleware struct {
	tokens *token.Service
	users  repository.UserRepository
	cache  *gocache.Cache
}

func NewAuthMiddleware(tokens *token.Service, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		users:  users,
		cache:  gocache.New(userCacheTTL, 2*userCacheTTL),
	}
}

// Authenticate resolves the bearer token to an active user and attaches the
// caller identity to the context. Token verification never touches
// last_login_at; only the login operation does.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortError(c, apperror.New(apperror.KindUnauthenticated, "missing authorization header"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortError(c, apperror.New(apperror.KindUnauthenticated, "invalid authorization format"))
			return
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			abortError(c, err)
			return
		}

		user, err := m.lookupUser(c, claims)
		if err != nil {
			abortError(c, err)
			return
		}

		c.Set(identityKey, &model.Identity{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		})
		c.Next()
	}
}

func (m *AuthMiddleware) lookupUser(c *gin.Context, claims *token.Claims) (*model.User, error) {
	cacheKey := claims.UserID.String()
	if cached, ok := m.cache.Get(cacheKey); ok {
		user := cached.(*model.User)
		if !user.Active {
			return nil, apperror.New(apperror.KindAccountDisabled, "account is disabled")
		}
		return user, nil
	}

	user, err := m.users.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindUnknownIdentity, "token identity no longer exists")
		}
		return nil, apperror.Internal(err)
	}

	m.cache.Set(cacheKey, user, gocache.DefaultExpiration)

	if !user.Active {
		return nil, apperror.New(apperror.KindAccountDisabled, "account is disabled")
	}
	return user, nil
}

// RequirePermission authorizes the attached identity against the static
// permission table for the given module and action.
func (m *AuthMiddleware) RequirePermission(module authz.Module, action authz.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			abortError(c, apperror.New(apperror.KindUnauthenticated, "no authenticated identity"))
			return
		}

		if !authz.Allowed(identity.Role, module, action) {
			abortError(c, apperror.Newf(apperror.KindForbidden,
				"role %s is not permitted to %s %s", identity.Role, action, module))
			return
		}

		c.Next()
	}
}

// Identity returns the authenticated caller attached by Authenticate.
func Identity(c *gin.Context) (*model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*model.Identity)
	return identity, ok
}
