package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/settings"
)

type settingsApi struct {
	svc      *settings.Service
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, _ echo.MiddlewareFunc, svc *settings.Service, validate *validator.Validate) {
	api := settingsApi{svc: svc, validate: validate}

	// un-authed endpoint
	g.POST("/login", api.login)
}

func registerSettingsAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *settings.Service, validate *validator.Validate) {
	api := settingsApi{svc: svc, validate: validate}

	sg := g.Group("/settings", jwt)
	sg.GET("", api.retrieve)
	sg.PUT("", api.save, systemAdminMiddleware())

	ug := g.Group("/users", jwt, systemAdminMiddleware())
	ug.GET("", api.queryUsers)
	ug.POST("", api.createUser)
	ug.GET("/:id", api.retrieveUser)
	ug.PUT("/:id", api.updateUser)
	ug.DELETE("/:id", api.destroyUser)
}

// Handlers

func (api *settingsApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(data.Email, data.Password, api.svc)
	if err != nil {
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(claims)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Settings())
}

func (api *settingsApi) save(ctx echo.Context) error {
	data := api.svc.Settings()
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Settings")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Save(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, data)
}

func (api *settingsApi) queryUsers(ctx echo.Context) error {
	users := api.svc.Users()
	if users == nil {
		users = []settings.User{}
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *settingsApi) createUser(ctx echo.Context) error {
	var data settings.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.CreateUser(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating user")
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *settingsApi) retrieveUser(ctx echo.Context) error {
	usr, err := api.svc.GetUser(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == settings.ErrUserNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding user by ID")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *settingsApi) updateUser(ctx echo.Context) error {
	var data settings.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUser")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.UpdateUser(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == settings.ErrUserNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating user")
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *settingsApi) destroyUser(ctx echo.Context) error {
	// no self-delete
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}
	if claims.Subject == ctx.Param("id") {
		return errHttpForbidden
	}

	if err := api.svc.DeleteUser(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == settings.ErrUserNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting user")
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
