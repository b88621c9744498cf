package spannerdb

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/spanner"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/models/m_customer"
	committer "github.com/murkotick/storefront-sequencer/internal/pkg/committer"
)

func (p *Platform) SignUp(ctx context.Context, draft domain.CustomerDraft) (*domain.Customer, error) {
	email := strings.TrimSpace(draft.Email)
	key := strings.ToLower(email)
	if key == "" || !strings.Contains(key, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", domain.ErrValidationFailure)
	}
	if draft.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidationFailure)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, err)
	}

	c := &domain.Customer{ID: p.newID(), Email: email, FirstName: draft.FirstName, LastName: draft.LastName}
	mut := m_customer.InsertMutation(key, c.ID, c.Email, c.FirstName, c.LastName, hash, p.clock.Now().UTC())
	if err := p.cm.Apply(ctx, committer.NewPlan().Add(mut)); err != nil {
		return nil, mapError(err, fmt.Sprintf("customer %s", key))
	}
	return c, nil
}

// Login fails with the same error for an unknown email and a wrong password.
func (p *Platform) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	key := strings.ToLower(strings.TrimSpace(email))
	row, err := p.client.Single().ReadRow(ctx, m_customer.TableName, spanner.Key{key}, m_customer.ReadColumns)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrInvalidCredentials)
		}
		return nil, mapError(err, "login")
	}

	var (
		c           domain.Customer
		hash        []byte
		first, last spanner.NullString
	)
	if err := row.Columns(&c.ID, &c.Email, &first, &last, &hash); err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidationFailure, domain.ErrInvalidCredentials)
	}
	c.FirstName, c.LastName = first.StringVal, last.StringVal
	return &c, nil
}
