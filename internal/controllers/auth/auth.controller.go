package authController

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"lightsout/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAuthDisabled = errors.New("admin authentication is not configured")

const tokenLifetime = 8 * time.Hour

type AuthController struct {
	Config   config.Config
	validate *validator.Validate
	log      logger.Logger
}

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type AuthControllerInterface interface {
	Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error)
	ValidateToken(tokenString string) error
}

func New(config config.Config) AuthControllerInterface {
	return &AuthController{
		Config:   config,
		validate: validator.New(),
		log:      logger.New("authController"),
	}
}

// Login exchanges the shared admin password for a signed token. There is one
// admin role; inspectors never authenticate.
func (c *AuthController) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := c.log.Function("Login")

	if err := c.validate.Struct(request); err != nil {
		return nil, err
	}

	if !c.Config.AdminConfigured() {
		return nil, ErrAuthDisabled
	}

	if subtle.ConstantTimeCompare([]byte(request.Password), []byte(c.Config.AdminPassword)) != 1 {
		log.Warn("Rejected admin login attempt")
		return nil, ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenLifetime)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString([]byte(c.Config.AuthSecret))
	if err != nil {
		return nil, log.Err("failed to sign token", err)
	}

	log.Info("Admin login succeeded")

	return &LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// ValidateToken checks signature, expiry, and the admin subject.
func (c *AuthController) ValidateToken(tokenString string) error {
	if !c.Config.AdminConfigured() {
		return ErrAuthDisabled
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(c.Config.AuthSecret), nil
		},
	)
	if err != nil {
		return ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "admin" {
		return ErrInvalidCredentials
	}

	return nil
}
