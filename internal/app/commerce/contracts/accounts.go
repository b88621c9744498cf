package contracts

import (
	"context"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
)

// Accounts is the platform's customer sign-up and login. Each method is a single opaque call.
type Accounts interface {
	SignUp(ctx context.Context, draft domain.CustomerDraft) (*domain.Customer, error)
	Login(ctx context.Context, email, password string) (*domain.Customer, error)
}
