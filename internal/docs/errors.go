package docs

import "fmt"

// MissingOrderDirectiveError reports a documented item without an ordering
// directive in by-index mode.
type MissingOrderDirectiveError struct {
	Namespace string
	Item      string
}

func (e *MissingOrderDirectiveError) Error() string {
	return fmt.Sprintf("missing order directive for item %q in module %q", e.Item, e.Namespace)
}

// InvalidOrderDirectiveError reports a directive whose value does not parse
// as a non-negative integer.
type InvalidOrderDirectiveError struct {
	Namespace string
	Item      string
	Value     string
}

func (e *InvalidOrderDirectiveError) Error() string {
	return fmt.Sprintf("invalid order directive %q for item %q in module %q", e.Value, e.Item, e.Namespace)
}

// OrderIndexOutOfRangeError reports directive values that do not form a
// dense 1..N permutation at one module level: a value outside the range or
// a slot claimed twice. Conflict names the item already holding the slot
// when the failure is a duplicate.
type OrderIndexOutOfRangeError struct {
	Namespace string
	Item      string
	Index     int
	Count     int
	Conflict  string
}

func (e *OrderIndexOutOfRangeError) Error() string {
	if e.Conflict != "" {
		return fmt.Sprintf("order index %d of item %q in module %q is already used by %q",
			e.Index, e.Item, e.Namespace, e.Conflict)
	}
	return fmt.Sprintf("order index %d of item %q in module %q is out of range 1..%d",
		e.Index, e.Item, e.Namespace, e.Count)
}
