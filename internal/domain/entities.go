package domain

// Order as owned by the order service.
type Order struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Product as owned by the product service. Products carry no cross-references.
type Product struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// User is the stored row shape. OrderIDs holds the serialized reference list
// exactly as the store keeps it; it is decoded only during hydration.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	OrderIDs string `json:"order_ids"`
}

// FailureReason classifies a single unresolved order reference.
type FailureReason string

const (
	ReasonNotFound     FailureReason = "not_found"
	ReasonTimeout      FailureReason = "timeout"
	ReasonLookupFailed FailureReason = "lookup_failed"
)

// ResolutionFailure marks one reference that could not be hydrated. It sits
// in the slot where the order would have been, so the client can tell "no
// orders" apart from "an order went missing".
type ResolutionFailure struct {
	OrderID int64         `json:"order_id"`
	Reason  FailureReason `json:"reason"`
}

// OrderResult is one slot of a hydrated reference list: either the order or
// a failure marker, never both.
type OrderResult struct {
	Order   *Order             `json:"order,omitempty"`
	Failure *ResolutionFailure `json:"failure,omitempty"`
}

// HydratedUser is the aggregation output. Orders preserves the position of
// every identifier in the stored reference list. OrdersError is set instead
// of Orders when the reference list itself could not be decoded; that
// failure stays local to the row.
type HydratedUser struct {
	ID          int64         `json:"id"`
	Username    string        `json:"username"`
	Password    string        `json:"password"`
	Email       string        `json:"email"`
	OrderIDs    []int64       `json:"order_ids"`
	Orders      []OrderResult `json:"orders"`
	OrdersError string        `json:"orders_error,omitempty"`
}
