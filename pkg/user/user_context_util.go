package user

import (
	"context"
	"errors"
)

type contextKey struct{}

var ErrNoUser = errors.New("no user in context")

// WithUser returns a copy of ctx carrying user as the current user.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// CurrentUser returns the user put into ctx by WithUser, or ErrNoUser.
func CurrentUser(ctx context.Context) (User, error) {
	if user, ok := ctx.Value(contextKey{}).(User); ok {
		return user, nil
	}
	return User{}, ErrNoUser
}

func CurrentId(ctx context.Context) (int, error) {
	user, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return user.Id, nil
}
