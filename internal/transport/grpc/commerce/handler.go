package commerce

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	contracts "github.com/murkotick/storefront-sequencer/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"
	commercev1 "github.com/murkotick/storefront-sequencer/internal/transport/grpc/commercev1"
)

// Handler is a thin gRPC transport adapter over a reference platform.
// It validates input and delegates; version checks happen in the platform.
type Handler struct {
	commercev1.UnimplementedPlatformServer

	platform  contracts.Platform
	readModel contracts.ReadModel
	accounts  contracts.Accounts
}

func NewHandler(p contracts.Platform, r contracts.ReadModel, a contracts.Accounts) *Handler {
	return &Handler{platform: p, readModel: r, accounts: a}
}

func (h *Handler) CreateResource(ctx context.Context, req *commercev1.CreateResourceRequest) (*commercev1.ResourceReply, error) {
	kind, draft, err := draftFor(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := h.platform.CreateResource(ctx, kind, draft)
	if err != nil {
		return nil, mapError(err)
	}
	return &commercev1.ResourceReply{Resource: res}, nil
}

func (h *Handler) GetResource(ctx context.Context, req *commercev1.GetResourceRequest) (*commercev1.ResourceReply, error) {
	kind, err := validateGetResource(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := h.platform.GetResource(ctx, kind, req.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return &commercev1.ResourceReply{Resource: res}, nil
}

func (h *Handler) MutateResource(ctx context.Context, req *commercev1.MutateResourceRequest) (*commercev1.ResourceReply, error) {
	kind, err := validateMutateResource(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := h.platform.MutateResource(ctx, kind, req.ID, req.Version, req.Actions)
	if err != nil {
		return nil, mapError(err)
	}
	return &commercev1.ResourceReply{Resource: res}, nil
}

func (h *Handler) CreateOrder(ctx context.Context, req *commercev1.CreateOrderRequest) (*commercev1.ResourceReply, error) {
	if err := validateCreateOrder(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := h.platform.CreateOrder(ctx, domain.Ref{ID: req.CartID, Version: req.CartVersion}, req.OrderNumber)
	if err != nil {
		return nil, mapError(err)
	}
	return &commercev1.ResourceReply{Resource: res}, nil
}

func (h *Handler) ListProducts(ctx context.Context, req *commercev1.ListRequest) (*commercev1.ListResourcesReply, error) {
	return h.list(ctx, req, h.readModel.ListProducts)
}

func (h *Handler) ListOrders(ctx context.Context, req *commercev1.ListRequest) (*commercev1.ListResourcesReply, error) {
	return h.list(ctx, req, h.readModel.ListOrders)
}

func (h *Handler) list(ctx context.Context, req *commercev1.ListRequest, fetch func(context.Context, int, int) ([]*domain.Resource, error)) (*commercev1.ListResourcesReply, error) {
	limit, offset, err := pageOf(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	items, err := fetch(ctx, limit, offset)
	if err != nil {
		return nil, mapError(err)
	}

	next := ""
	if len(items) == limit {
		next = commercev1.EncodePageToken(offset + len(items))
	}
	return &commercev1.ListResourcesReply{Resources: items, NextPageToken: next}, nil
}

func (h *Handler) SignUp(ctx context.Context, req *commercev1.SignUpRequest) (*commercev1.CustomerReply, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}
	c, err := h.accounts.SignUp(ctx, domain.CustomerDraft{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &commercev1.CustomerReply{Customer: c}, nil
}

func (h *Handler) Login(ctx context.Context, req *commercev1.LoginRequest) (*commercev1.CustomerReply, error) {
	if req == nil || req.Email == "" {
		return nil, status.Error(codes.InvalidArgument, "email is required")
	}
	c, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, mapError(err)
	}
	return &commercev1.CustomerReply{Customer: c}, nil
}
