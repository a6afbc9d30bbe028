package store

// KeyKind discriminates how a record is being looked up.
type KeyKind int

const (
	ByID KeyKind = iota + 1
	ByNumber
	ByOrderID
)

// LookupKey is a tagged lookup variant. Records reachable by either an opaque
// identifier or a human-readable number take a LookupKey instead of a pair of
// optional fields; the store translates the variant into a scoped query.
type LookupKey struct {
	Kind  KeyKind
	Value string
}

func KeyByID(id string) LookupKey {
	return LookupKey{Kind: ByID, Value: id}
}

func KeyByNumber(number string) LookupKey {
	return LookupKey{Kind: ByNumber, Value: number}
}

// KeyByOrderID looks a record up through its parent order. Only refunds
// support this variant.
func KeyByOrderID(orderID string) LookupKey {
	return LookupKey{Kind: ByOrderID, Value: orderID}
}

func (k LookupKey) IsZero() bool {
	return k.Kind == 0 || k.Value == ""
}
