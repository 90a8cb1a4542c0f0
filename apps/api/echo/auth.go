package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/settings"
)

var (
	// appJWTConfig is the default JWT auth middleware config. ConfigureAuth
	// fills in the signing key from the app config.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "userToken",
		Claims:        new(Claims),
	}
	appName            string
	jwtExpirationDelta time.Duration
)

// ConfigureAuth configures JWT auth from the app config and returns the
// auth middleware protecting the authed route groups.
func ConfigureAuth(conf *core.Config) echo.MiddlewareFunc {
	appName = conf.AppName
	jwtExpirationDelta = conf.Server.JWTExpirationDelta
	appJWTConfig.SigningKey = []byte(conf.SecretKey)
	return middleware.JWTWithConfig(appJWTConfig)
}

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	Email           string `json:"email,omitempty"`
	Role            string `json:"role,omitempty"`
	ManageStudents  bool   `json:"manage_students,omitempty"`
	ManageFinances  bool   `json:"manage_finances,omitempty"`
	GenerateReports bool   `json:"generate_reports,omitempty"`
	SystemAdmin     bool   `json:"system_admin,omitempty"`
}

func GetUserClaims(usr settings.User) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    appName,
			Subject:   usr.ID,
			Audience:  "Dashboard",
			ExpiresAt: now.Add(jwtExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email:           usr.Email,
		Role:            usr.Role,
		ManageStudents:  usr.Permissions.ManageStudents,
		ManageFinances:  usr.Permissions.ManageFinances,
		GenerateReports: usr.Permissions.GenerateReports,
		SystemAdmin:     usr.Permissions.SystemAdmin,
	}
}

func authenticate(email, pwd string, svc *settings.Service) (*Claims, error) {
	usr, err := svc.GetUserByEmail(email)
	if err != nil {
		if errors.Cause(err) == settings.ErrUserNotFound {
			return nil, errAuthenticationFailed
		}
		return nil, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return nil, errAuthenticationFailed
	}
	return GetUserClaims(usr), nil
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey.([]byte))
	if err != nil {
		return "", errors.New("signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}
