package auth

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/RogansDev/romedicals-api/internal/model"
	"github.com/RogansDev/romedicals-api/internal/repository"
	"github.com/RogansDev/romedicals-api/internal/service/audit"
	"github.com/RogansDev/romedicals-api/internal/service/user"
	"github.com/RogansDev/romedicals-api/pkg/apperror"
	"github.com/RogansDev/romedicals-api/pkg/security"
	"github.com/RogansDev/romedicals-api/pkg/token"
)

type Service struct {
	users   repository.UserRepository
	userSvc *user.Service
	hasher  security.PasswordHasher
	tokens  *token.Service
	expiry  time.Duration
	auditor *audit.Service
}

func NewService(users repository.UserRepository, userSvc *user.Service, hasher security.PasswordHasher, tokens *token.Service, expiry time.Duration, auditor *audit.Service) *Service {
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &Service{
		users:   users,
		userSvc: userSvc,
		hasher:  hasher,
		tokens:  tokens,
		expiry:  expiry,
		auditor: auditor,
	}
}

// Login verifies the credential pair and issues a token. Unknown email and
// wrong password produce the same error so the response does not reveal
// which accounts exist.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.New(apperror.KindInvalidCredential, "invalid email or password")
		}
		return nil, apperror.Internal(err)
	}

	if !u.Active {
		return nil, apperror.New(apperror.KindAccountDisabled, "account is disabled")
	}

	if err := s.hasher.Compare(u.PasswordHash, req.Password); err != nil {
		return nil, apperror.New(apperror.KindInvalidCredential, "invalid email or password")
	}

	accessToken, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		// login still succeeds; the timestamp is advisory
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to record last login")
	}
	u.LastLoginAt = &now

	s.auditor.Record(ctx, &model.Identity{ID: u.ID, Email: u.Email, Role: u.Role}, "login", "user", u.ID, nil)

	return &model.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.expiry.Seconds()),
		User:        u,
	}, nil
}

// Register creates a user account and immediately issues a token for it.
// All user-creation rules (email uniqueness, specialty checks) apply.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.TokenResponse, error) {
	u, err := s.userSvc.Create(ctx, nil, &model.CreateUserRequest{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Role:        req.Role,
		SpecialtyID: req.SpecialtyID,
	})
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.Generate(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &model.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.expiry.Seconds()),
		User:        u,
	}, nil
}
