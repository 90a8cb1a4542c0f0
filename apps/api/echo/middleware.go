package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// permissionMiddleware guards a route group behind one of the static
// permission flags. SystemAdmin passes every gate.
func permissionMiddleware(hasPerm func(Claims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.SystemAdmin || hasPerm(claims) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}

func manageStudentsMiddleware() echo.MiddlewareFunc {
	return permissionMiddleware(func(c Claims) bool { return c.ManageStudents })
}

func manageFinancesMiddleware() echo.MiddlewareFunc {
	return permissionMiddleware(func(c Claims) bool { return c.ManageFinances })
}

func generateReportsMiddleware() echo.MiddlewareFunc {
	return permissionMiddleware(func(c Claims) bool { return c.GenerateReports })
}

func systemAdminMiddleware() echo.MiddlewareFunc {
	return permissionMiddleware(func(c Claims) bool { return c.SystemAdmin })
}
