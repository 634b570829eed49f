package views

import (
	"context"

	"github.com/sellerscs/league-portal/internal/middleware"
	users "github.com/sellerscs/league-portal/internal/user"
)

func GetUser(ctx context.Context) *users.User {
	return middleware.GetAuthenticatedUser(ctx)
}
