// Package grpcclient talks to a remote commerce platform over the commerce.v1 gRPC service.
package grpcclient

import (
	"context"
	"errors"
	"fmt"
	"math"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	commercev1 "github.com/murkotick/storefront-sequencer/internal/transport/grpc/commercev1"
)

type Client struct {
	rpc commercev1.PlatformClient
}

func New(cc grpc.ClientConnInterface) *Client {
	return &Client{rpc: commercev1.NewPlatformClient(cc)}
}

// Dial opens a plaintext connection to addr. The caller closes the returned conn.
func Dial(addr string, opts ...grpc.DialOption) (*Client, *grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: dial %s: %w", domain.ErrNetworkFailure, addr, err)
	}
	return New(conn), conn, nil
}

func (c *Client) CreateResource(ctx context.Context, kind domain.ResourceKind, draft domain.Draft) (*domain.Resource, error) {
	req := &commercev1.CreateResourceRequest{Kind: string(kind)}
	switch d := draft.(type) {
	case *domain.CartDraft:
		req.Cart = d
	case *domain.ProductDraft:
		req.Product = d
	default:
		return nil, fmt.Errorf("%w: unsupported draft %T", domain.ErrValidationFailure, draft)
	}
	reply, err := c.rpc.CreateResource(ctx, req)
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Resource, nil
}

func (c *Client) GetResource(ctx context.Context, kind domain.ResourceKind, id string) (*domain.Resource, error) {
	reply, err := c.rpc.GetResource(ctx, &commercev1.GetResourceRequest{Kind: string(kind), ID: id})
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Resource, nil
}

func (c *Client) MutateResource(ctx context.Context, kind domain.ResourceKind, id string, version int64, actions []domain.Action) (*domain.Resource, error) {
	reply, err := c.rpc.MutateResource(ctx, &commercev1.MutateResourceRequest{
		Kind:    string(kind),
		ID:      id,
		Version: version,
		Actions: actions,
	})
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Resource, nil
}

func (c *Client) CreateOrder(ctx context.Context, cart domain.Ref, orderNumber string) (*domain.Resource, error) {
	reply, err := c.rpc.CreateOrder(ctx, &commercev1.CreateOrderRequest{
		CartID:      cart.ID,
		CartVersion: cart.Version,
		OrderNumber: orderNumber,
	})
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Resource, nil
}

func (c *Client) ListProducts(ctx context.Context, limit, offset int) ([]*domain.Resource, error) {
	reply, err := c.rpc.ListProducts(ctx, listRequest(limit, offset))
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Resources, nil
}

func (c *Client) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Resource, error) {
	reply, err := c.rpc.ListOrders(ctx, listRequest(limit, offset))
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Resources, nil
}

func (c *Client) SignUp(ctx context.Context, draft domain.CustomerDraft) (*domain.Customer, error) {
	reply, err := c.rpc.SignUp(ctx, &commercev1.SignUpRequest{
		Email:     draft.Email,
		Password:  draft.Password,
		FirstName: draft.FirstName,
		LastName:  draft.LastName,
	})
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Customer, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	reply, err := c.rpc.Login(ctx, &commercev1.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fromStatus(err)
	}
	return reply.Customer, nil
}

func listRequest(limit, offset int) *commercev1.ListRequest {
	if limit > math.MaxInt32 {
		limit = math.MaxInt32
	}
	return &commercev1.ListRequest{PageSize: int32(limit), PageToken: commercev1.EncodePageToken(offset)}
}

// fromStatus maps a gRPC status back onto the domain sentinels, keeping the server message.
func fromStatus(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, err)
	}
	msg := st.Message()
	switch st.Code() {
	case codes.Aborted:
		return fmt.Errorf("%w: %s", domain.ErrVersionConflict, msg)
	case codes.InvalidArgument, codes.FailedPrecondition, codes.AlreadyExists, codes.OutOfRange:
		return fmt.Errorf("%w: %s", domain.ErrValidationFailure, msg)
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %w: %s", domain.ErrValidationFailure, domain.ErrInvalidCredentials, msg)
	case codes.NotFound:
		return fmt.Errorf("%w: %s", domain.ErrResourceNotFound, msg)
	case codes.DataLoss:
		return fmt.Errorf("%w: %s", domain.ErrMissingVersion, msg)
	case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled, codes.ResourceExhausted:
		return fmt.Errorf("%w: %s: %s", domain.ErrNetworkFailure, st.Code(), msg)
	}
	return fmt.Errorf("platform error %s: %s", st.Code(), msg)
}

var (
	_ contracts.Platform  = (*Client)(nil)
	_ contracts.ReadModel = (*Client)(nil)
	_ contracts.Accounts  = (*Client)(nil)
)
