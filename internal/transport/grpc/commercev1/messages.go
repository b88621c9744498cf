package commercev1

import "github.com/murkotick/storefront-sequencer/internal/app/commerce/domain"

type CreateResourceRequest struct {
	Kind    string               `json:"kind"`
	Cart    *domain.CartDraft    `json:"cart,omitempty"`
	Product *domain.ProductDraft `json:"product,omitempty"`
}

type GetResourceRequest struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type MutateResourceRequest struct {
	Kind    string          `json:"kind"`
	ID      string          `json:"id"`
	Version int64           `json:"version"`
	Actions []domain.Action `json:"actions"`
}

type CreateOrderRequest struct {
	CartID      string `json:"cartId"`
	CartVersion int64  `json:"cartVersion"`
	OrderNumber string `json:"orderNumber"`
}

// ResourceReply carries the resource as stored after the call, including its new version.
type ResourceReply struct {
	Resource *domain.Resource `json:"resource"`
}

// ListRequest pages through a collection; PageToken is the NextPageToken of the previous reply.
type ListRequest struct {
	PageSize  int32  `json:"pageSize"`
	PageToken string `json:"pageToken,omitempty"`
}

type ListResourcesReply struct {
	Resources     []*domain.Resource `json:"resources"`
	NextPageToken string             `json:"nextPageToken,omitempty"`
}

type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CustomerReply struct {
	Customer *domain.Customer `json:"customer"`
}
