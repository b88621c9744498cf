package domain

// ActionName is the discriminator of an update action.
type ActionName string

const (
	ActionAddLineItem        ActionName = "addLineItem"
	ActionSetShippingAddress ActionName = "setShippingAddress"
	ActionSetPrices          ActionName = "setPrices"
	ActionPublish            ActionName = "publish"
)

// Action is one mutation step. A batch of actions is applied atomically by the platform
// against a single expected version.
type Action struct {
	Action    ActionName `json:"action"`
	ProductID string     `json:"productId,omitempty"`
	VariantID int        `json:"variantId,omitempty"`
	Quantity  int        `json:"quantity,omitempty"`
	Address   *Address   `json:"address,omitempty"`
	Prices    []Price    `json:"prices,omitempty"`
}

// AddLineItem adds quantity units of a product variant to a cart.
// A zero variantID targets the master variant.
func AddLineItem(productID string, variantID, quantity int) Action {
	if variantID == 0 {
		variantID = MasterVariantID
	}
	return Action{
		Action:    ActionAddLineItem,
		ProductID: productID,
		VariantID: variantID,
		Quantity:  quantity,
	}
}

// SetShippingAddress sets the cart's shipping address.
func SetShippingAddress(addr Address) Action {
	return Action{Action: ActionSetShippingAddress, Address: &addr}
}

// SetPrices replaces the staged prices of a product variant.
func SetPrices(variantID int, prices ...Price) Action {
	if variantID == 0 {
		variantID = MasterVariantID
	}
	return Action{Action: ActionSetPrices, VariantID: variantID, Prices: prices}
}

// Publish copies a product's staged data into its current data.
func Publish() Action {
	return Action{Action: ActionPublish}
}

// ActionNames lists the names of a batch, in order. Used for logging.
func ActionNames(actions []Action) []string {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a.Action))
	}
	return out
}
