// Command createsuperuser seeds one staff admin account. It runs the same
// registration path as the API and exits when the account exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"storefront/config"
	"storefront/internal/infra/auth"
	logs "storefront/internal/infra/log"
	"storefront/internal/infra/persistence/postgres"
	"storefront/internal/infra/pubsub"
	"storefront/internal/infra/revocation"
	"storefront/internal/usecase"
	"storefront/internal/usecase/impl"

	"go.uber.org/fx"
)

type runParams struct {
	fx.In
	fx.Shutdowner

	Ctx   context.Context
	Users usecase.UserUsecase
}

func main() {
	name := flag.String("name", "", "display name for the superuser")
	email := flag.String("email", "", "login email for the superuser")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createsuperuser -email ... -password ... [-name ...]")
		os.Exit(2)
	}

	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewUserRepository,
			postgres.NewRoleRepository,
			postgres.NewActivityRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewTransactionManager,
			auth.NewBcryptHasher,
			auth.NewJWTService,
			revocation.New,
			impl.NewActivityService,
			impl.NewUserService,
		),
		pubsub.Module,
		fx.Invoke(func(params runParams) {
			go createSuperuser(params, *name, *email, *password)
		}),
	).Run()
}

func createSuperuser(params runParams, name, email, password string) {
	out, err := params.Users.CreateSuperuser(params.Ctx, &usecase.CreateSuperuserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		slog.Error("Failed to create superuser", slog.Any("error", err))
	} else {
		slog.Info("Superuser created",
			slog.String("id", out.User.ID.String()),
			slog.String("email", out.User.Email))
	}

	if shutdownErr := params.Shutdown(); shutdownErr != nil {
		slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
		os.Exit(1)
	}
}
