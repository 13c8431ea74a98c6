package account

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/amgrenovation/ops-dashboard/internal/audit"
	"github.com/amgrenovation/ops-dashboard/internal/auth"
	"github.com/amgrenovation/ops-dashboard/internal/domain/access"
	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/models"
	"github.com/amgrenovation/ops-dashboard/internal/profile"
	"github.com/amgrenovation/ops-dashboard/internal/validators"
)

// Messages returned to the caller of the create-user function.
var (
	ErrMissingHeader  = errors.New("Missing authorization header")
	ErrInvalidToken   = errors.New("Invalid authentication token")
	ErrNotAdmin       = errors.New("Only admins can create users")
	ErrInvalidEmail   = errors.New("Invalid email address")
	ErrWeakPassword   = errors.New("Password should be at least 6 characters")
	ErrEmailTaken     = errors.New("A user with this email address has already been registered")
	ErrInvalidRole    = errors.New("Invalid role")
	ErrUnknownFeature = errors.New("Unknown feature")
)

const minPasswordLength = 6

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateUserInput struct {
	AuthorizationHeader string

	Email           string
	Password        string
	Role            string
	EnabledFeatures []string
	N8NConfig       map[string]any
}

type CreateUserResult struct {
	User    *models.User    `json:"user"`
	Profile *models.Profile `json:"profile"`
	Message string          `json:"message"`
}

// ======================================================
// USE CASE
// ======================================================

// CreateUser lets an administrator open an account for someone else. It
// validates the caller itself because it is exposed outside the regular
// authenticated API.
type CreateUser struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	profiles profile.Resolver
	audit    *audit.Dispatcher

	// CheckDomain, when set, rejects addresses whose domain does not resolve.
	CheckDomain func(email string) bool
}

func NewCreateUser(
	db *gorm.DB,
	tokens *auth.TokenManager,
	profiles profile.Resolver,
	audit *audit.Dispatcher,
) *CreateUser {
	return &CreateUser{db: db, tokens: tokens, profiles: profiles, audit: audit}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateUser) Execute(ctx context.Context, in CreateUserInput) (*CreateUserResult, error) {

	// --------------------------------------------------
	// 1. Caller must be an administrator
	// --------------------------------------------------
	callerID, err := uc.caller(ctx, in.AuthorizationHeader)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Payload
	// --------------------------------------------------
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, ErrInvalidEmail
	}
	if uc.CheckDomain != nil && !uc.CheckDomain(email) {
		return nil, ErrInvalidEmail
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	features := in.EnabledFeatures
	if features == nil {
		features = models.DefaultUserFeatures
	}
	if err := validateFeatures(features); err != nil {
		return nil, err
	}

	n8n := datatypes.JSONMap(in.N8NConfig)
	if n8n == nil {
		n8n = datatypes.JSONMap{}
	}
	if err := validators.WebhookConfig(n8n); err != nil {
		code, _ := httperr.AsBusiness(err)
		return nil, errors.New(code)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Identity, then overwrite the default profile
	// --------------------------------------------------
	user := &models.User{Email: email, PasswordHash: hash}
	if err := uc.db.WithContext(ctx).Create(user).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	p := models.NewDefaultProfile(user.ID, email)
	p.Role = role
	p.EnabledFeatures = append([]string(nil), features...)
	p.N8NConfig = n8n
	if err := uc.db.WithContext(ctx).
		Model(&models.Profile{ID: user.ID}).
		Select("role", "enabled_features", "n8n_config").
		Updates(p).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]string{"email": email, "role": role},
	})

	return &CreateUserResult{User: user, Profile: p, Message: "User created successfully"}, nil
}

func (uc *CreateUser) caller(ctx context.Context, header string) (uuid.UUID, error) {
	token, err := auth.BearerToken(header)
	if errors.Is(err, auth.ErrMissingHeader) {
		return uuid.Nil, ErrMissingHeader
	}
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, _ := claims.UserID()

	p, err := uc.profiles.Resolve(ctx, id)
	if err != nil || !p.IsAdmin() {
		return uuid.Nil, ErrNotAdmin
	}
	return id, nil
}

func validateFeatures(features []string) error {
	for _, f := range features {
		if !access.IsKnown(f) {
			return ErrUnknownFeature
		}
	}
	return nil
}
