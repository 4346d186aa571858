// Package identity registers accounts and issues revocable bearer tokens.
//
// Tokens are HS256 JWTs. The jti claim names an access_tokens row that holds
// the sha256 of the token; deleting the row revokes the token even though its
// signature stays valid.
package identity

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vinoteca/catalog/internal/catalog"
	"github.com/vinoteca/catalog/internal/domain"
	"github.com/vinoteca/catalog/internal/validation"
	"github.com/vinoteca/catalog/pkg/common"
)

const (
	// TokenContextKey is where the echo-jwt middleware stores the parsed token.
	TokenContextKey = "user"
	// AccountContextKey caches the resolved account on the request.
	AccountContextKey = "account"

	tokenName = "authToken"
)

var (
	ErrUnauthorized    = errors.New("the provided credentials are incorrect")
	ErrUnauthenticated = errors.New("unauthenticated")
)

var registerRules = validation.Rules{
	validation.Field("name", validation.Required(), validation.String(), validation.MaxLen(255)),
	validation.Field("email", validation.Required(), validation.String(), validation.Email(), validation.MaxLen(255)),
	validation.Field("password", validation.Required(), validation.String(), validation.MinLen(8), validation.MaxLen(72)),
}

var loginRules = validation.Rules{
	validation.Field("email", validation.Required(), validation.String(), validation.Email()),
	validation.Field("password", validation.Required(), validation.String()),
}

// Claims are the JWT claims of an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// Token is a freshly issued bearer token. Plain is only available here.
type Token struct {
	Plain     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	db        *gorm.DB
	validator *validation.Validator
	secret    []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewService(db *gorm.DB, secret string, ttl time.Duration) *Service {
	return &Service{
		db:        db,
		validator: validation.New(nil),
		secret:    []byte(secret),
		ttl:       ttl,
		now:       time.Now,
	}
}

// Secret returns the token signing key
func (s *Service) Secret() []byte {
	return s.secret
}

// NewClaims returns empty claims for token parsing.
func (s *Service) NewClaims(echo.Context) jwt.Claims {
	return new(Claims)
}

func (s *Service) validate(ctx context.Context, rules validation.Rules, fields map[string]any) (map[string]any, error) {
	values, err := s.validator.Validate(ctx, rules, fields)
	var verr *validation.Errors
	if errors.As(err, &verr) {
		return nil, &catalog.ValidationFailed{Fields: verr.Fields}
	}
	return values, err
}

// Register creates an account and issues its first token.
func (s *Service) Register(ctx context.Context, fields map[string]any) (*domain.Account, *Token, error) {
	values, err := s.validate(ctx, registerRules, fields)
	if err != nil {
		return nil, nil, err
	}
	email := strings.ToLower(values["email"].(string))

	var count int64
	if err := s.db.WithContext(ctx).Model(&domain.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, nil, errors.Wrap(err, "lookup email")
	}
	if count > 0 {
		vf := &catalog.ValidationFailed{}
		vf.Add("email", "The email has already been taken.")
		return nil, nil, vf
	}

	hash, err := HashPassword(values["password"].(string))
	if err != nil {
		return nil, nil, err
	}
	acc := &domain.Account{
		Name:     values["name"].(string),
		Email:    email,
		Password: hash,
	}
	if err := s.db.WithContext(ctx).Create(acc).Error; err != nil {
		return nil, nil, errors.Wrap(err, "create account")
	}
	tok, err := s.IssueToken(ctx, acc)
	if err != nil {
		return nil, nil, err
	}
	return acc, tok, nil
}

// Login validates the credentials payload, authenticates and issues a token.
func (s *Service) Login(ctx context.Context, fields map[string]any) (*domain.Account, *Token, error) {
	values, err := s.validate(ctx, loginRules, fields)
	if err != nil {
		return nil, nil, err
	}
	acc, err := s.Authenticate(ctx, values["email"].(string), values["password"].(string))
	if err != nil {
		return nil, nil, err
	}
	tok, err := s.IssueToken(ctx, acc)
	if err != nil {
		return nil, nil, err
	}
	return acc, tok, nil
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	var acc domain.Account
	err := s.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, errors.Wrap(err, "lookup account")
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	now := s.now()
	acc.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&acc).Update("last_login", now).Error; err != nil {
		return nil, errors.Wrap(err, "update last login")
	}
	return &acc, nil
}

func (s *Service) IssueToken(ctx context.Context, acc *domain.Account) (*Token, error) {
	now := s.now()
	row := &domain.AccessToken{
		ID:        common.UUIDint64(),
		AccountID: acc.ID,
		Name:      tokenName,
		ExpiresAt: now.Add(s.ttl),
	}
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        strconv.FormatInt(row.ID, 10),
		Subject:   strconv.FormatInt(acc.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(row.ExpiresAt),
	}}
	plain, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(err, "sign token")
	}
	row.TokenHash = common.Sha256Hex(plain)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, errors.Wrap(err, "store token")
	}
	return &Token{Plain: plain, ExpiresAt: row.ExpiresAt}, nil
}

func (s *Service) RevokeAllTokens(ctx context.Context, acc *domain.Account) error {
	err := s.db.WithContext(ctx).Where("account_id = ?", acc.ID).Delete(&domain.AccessToken{}).Error
	return errors.Wrap(err, "revoke tokens")
}

// Refresh revokes every token of the account and issues a new one.
func (s *Service) Refresh(ctx context.Context, acc *domain.Account) (*Token, error) {
	if err := s.RevokeAllTokens(ctx, acc); err != nil {
		return nil, err
	}
	return s.IssueToken(ctx, acc)
}

// Verify resolves a parsed token to its account. The token must still have
// its access_tokens row.
func (s *Service) Verify(ctx context.Context, token *jwt.Token) (*domain.Account, error) {
	if token == nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrUnauthenticated
	}
	jti, err := strconv.ParseInt(claims.ID, 10, 64)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	var row domain.AccessToken
	err = s.db.WithContext(ctx).Where("id = ?", jti).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, errors.Wrap(err, "lookup token")
	}
	now := s.now()
	if row.TokenHash != common.Sha256Hex(token.Raw) || now.After(row.ExpiresAt) {
		return nil, ErrUnauthenticated
	}

	var acc domain.Account
	err = s.db.WithContext(ctx).Where("id = ?", row.AccountID).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, errors.Wrap(err, "lookup account")
	}
	s.db.WithContext(ctx).Model(&row).Update("last_used_at", now)
	return &acc, nil
}

// ResolveCurrentAccount returns the account of the authenticated request.
func (s *Service) ResolveCurrentAccount(c echo.Context) (*domain.Account, error) {
	if acc, ok := c.Get(AccountContextKey).(*domain.Account); ok {
		return acc, nil
	}
	token, _ := c.Get(TokenContextKey).(*jwt.Token)
	acc, err := s.Verify(c.Request().Context(), token)
	if err != nil {
		return nil, err
	}
	c.Set(AccountContextKey, acc)
	return acc, nil
}

// PruneExpired deletes token rows past their expiry.
func (s *Service) PruneExpired(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", s.now()).Delete(&domain.AccessToken{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "prune tokens")
	}
	return result.RowsAffected, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}
