package spannerdb

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/repo"
)

// maxListRows bounds a listing when the caller passes no limit.
const maxListRows = 10000

func (p *Platform) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Resource, error) {
	return p.list(ctx, domain.KindProduct, limit, offset)
}

func (p *Platform) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Resource, error) {
	return p.list(ctx, domain.KindOrder, limit, offset)
}

// list returns resources ordered by creation time, then id.
func (p *Platform) list(ctx context.Context, kind domain.ResourceKind, limit, offset int) ([]*domain.Resource, error) {
	stmt := listStatement(kind, limit, offset)
	iter := p.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := []*domain.Resource{}
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, mapError(err, fmt.Sprintf("list %s", kind))
		}
		res, err := repo.DecodeRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
}

func listStatement(kind domain.ResourceKind, limit, offset int) spanner.Statement {
	if limit <= 0 || limit > maxListRows {
		limit = maxListRows
	}
	if offset < 0 {
		offset = 0
	}
	return spanner.Statement{
		SQL: `SELECT version, body
		FROM resources
		WHERE kind = @kind
		ORDER BY created_at ASC, resource_id ASC
		LIMIT @limit OFFSET @offset`,
		Params: map[string]interface{}{
			"kind":   string(kind),
			"limit":  int64(limit),
			"offset": int64(offset),
		},
	}
}
