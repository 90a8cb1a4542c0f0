package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core"
	"github.com/trezcool/shule/core/settings"
)

// addUser updates or creates a dashboard settings.User
func (cli *commandLine) addUser(email, role, pwd string, isAdmin bool) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role)

	svc := settings.NewService(cli.settingsRepo)
	if err := svc.Load(ctx); err != nil {
		return err
	}

	usr, err := svc.GetUserByEmail(email)
	if err != nil {
		if errors.Cause(err) != settings.ErrUserNotFound {
			return err
		}
		usr = settings.User{
			ID:        uuid.New().String(),
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	}
	if role != "" {
		usr.Role = role
	}
	if isAdmin {
		usr.Permissions = settings.Permissions{
			ManageStudents:  true,
			ManageFinances:  true,
			GenerateReports: true,
			SystemAdmin:     true,
		}
	}
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}

	if err := cli.settingsRepo.UpdateUser(ctx, usr); err != nil {
		if errors.Cause(err) != settings.ErrUserNotFound {
			return err
		}
		return cli.settingsRepo.InsertUser(ctx, usr)
	}
	return nil
}
