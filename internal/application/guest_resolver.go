package application

import (
	"context"

	"github.com/example/hotel-console/internal/tokenstore"
)

// resolveGuest looks up the guest record of the signed-in user. The first
// match in response order wins; a missing record or a zero id reports
// ErrGuestNotFound.
func resolveGuest(ctx context.Context, guests GuestDirectory, session tokenstore.Session) (Guest, error) {
	if !session.SignedIn() {
		return Guest{}, ErrNotSignedIn
	}
	if guests == nil {
		return Guest{}, ErrGuestNotFound
	}
	matches, err := guests.FindGuestsByEmail(ctx, session.Token, session.User.Identity())
	if err != nil {
		return Guest{}, err
	}
	if len(matches) == 0 || matches[0].ID == 0 {
		return Guest{}, ErrGuestNotFound
	}
	return matches[0], nil
}
