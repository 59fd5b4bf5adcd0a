package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"recipebox/internal/config"
	"recipebox/internal/logger"
	"recipebox/internal/store"
	"recipebox/internal/utils"
	"recipebox/internal/validators"
	"recipebox/models"
)

// accountService is the concrete implementation of AccountService.
// It handles registration, credential verification, and the JWT token
// lifecycle using an AccountRepository for persistence and bcrypt for
// password hashing.
type accountService struct {
	// accountRepository is the data-access layer used to create and look up
	// accounts.
	accountRepository store.AccountRepository

	// validator checks inbound request models before any state changes.
	validator validators.Validator

	// bcryptCost is the bcrypt work factor. Zero selects the library
	// default.
	bcryptCost int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during
	// parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAccountService constructs a new AccountService wired to the given
// AccountRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(accountRepository store.AccountRepository, cfg config.App, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		validator:         validators.NewInputValidator(),
		bcryptCost:        cfg.BcryptCost,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		logger:            logger,
	}
}

// NormalizeEmail lowercases the domain portion of an email address (the part
// after the last "@"). The local part is preserved as supplied.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// Register creates a new account.
//
// It validates that the email is non-empty and the password long enough,
// normalizes the email, hashes the password with bcrypt, and delegates
// persistence to the AccountRepository. New accounts are active and carry no
// privileged flags.
//
// Returns the persisted account (with a server-assigned UserID) or:
//   - a *ValidationError if the email is empty or the password too short,
//     or the email is already taken.
//   - A wrapped storage error if the repository call fails otherwise.
func (a *accountService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Err(err).Msg("registration request rejected")
		return models.User{}, err
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        NormalizeEmail(req.Email),
		Username:     req.Username,
		PasswordHash: hash,
		IsActive:     true,
	}

	registered, err := a.accountRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, validators.NewValidationError(validators.FieldEmail, "already registered")
		}
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// RegisterPrivileged creates an account and grants it every privileged
// flag. Used by the startup bootstrap path; never reachable from the API.
func (a *accountService) RegisterPrivileged(ctx context.Context, firstName, lastName, username, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	registered, err := a.Register(ctx, models.RegisterRequest{
		Email:    email,
		Password: password,
		Username: username,
	})
	if err != nil {
		return models.User{}, err
	}

	registered.FirstName = firstName
	registered.LastName = lastName
	registered.IsActive = true
	registered.IsStaff = true
	registered.IsSuperuser = true

	promoted, err := a.accountRepository.UpdateUser(ctx, registered)
	if err != nil {
		log.Err(err).Int64("user_id", registered.UserID).Msg("promoting account failed")
		return models.User{}, fmt.Errorf("promoting account failed: %w", err)
	}

	return promoted, nil
}

// Authenticate verifies the supplied credentials.
//
// The email is normalized before lookup, the password compared against the
// stored bcrypt hash, and inactive accounts are rejected. All failure modes
// collapse into ErrWrongPassword so that callers cannot probe which emails
// are registered.
func (a *accountService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.User{}, ErrWrongPassword
	}

	found, err := a.accountRepository.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		log.Err(err).Msg("user search by email failed")
		return models.User{}, ErrWrongPassword
	}

	if !found.IsActive {
		log.Error().Int64("user_id", found.UserID).Msg("inactive account attempted to authenticate")
		return models.User{}, ErrWrongPassword
	}

	if bcrypt.CompareHashAndPassword([]byte(found.PasswordHash), []byte(password)) != nil {
		log.Error().Int64("user_id", found.UserID).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return found, nil
}

// Profile returns the account of the given id.
func (a *accountService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return a.accountRepository.FindUserByID(ctx, userID)
}

// UpdateProfile applies the non-nil fields of req to the account.
//
// A new password is validated for length and re-hashed; the username is
// applied verbatim. Nil fields are left untouched.
func (a *accountService) UpdateProfile(ctx context.Context, userID int64, req models.UpdateProfileRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.accountRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if err := a.validator.Validate(ctx, req); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update rejected")
		return models.User{}, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}

	if req.Password != nil {
		hash, hashErr := a.hashPassword(*req.Password)
		if hashErr != nil {
			log.Err(hashErr).Int64("user_id", userID).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("password hashing failed: %w", hashErr)
		}
		user.PasswordHash = hash
	}

	updated, err := a.accountRepository.UpdateUser(ctx, user)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updated, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, and expires after
// tokenDuration.
func (a *accountService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *accountService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// hashPassword returns the bcrypt hash of password using the configured
// cost.
func (a *accountService) hashPassword(password string) (string, error) {
	cost := a.bcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}
