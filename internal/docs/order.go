package docs

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Order selects how a module's items are displayed.
type Order int

const (
	// OrderAlphabetical sorts items by display name, ties keep discovery order.
	OrderAlphabetical Order = iota
	// OrderByIndex sorts items by their `# rhai-autodocs:index:<n>` directive.
	OrderByIndex
)

func (o Order) String() string {
	if o == OrderByIndex {
		return "by-index"
	}
	return "alphabetical"
}

// ParseOrder maps a configuration value onto an Order.
func ParseOrder(s string) (Order, error) {
	switch s {
	case "alphabetical":
		return OrderAlphabetical, nil
	case "by-index":
		return OrderByIndex, nil
	default:
		return 0, fmt.Errorf("unknown item order %q, expected alphabetical or by-index", s)
	}
}

// findOrderIndex scans a comment block for the ordering directive and
// parses its value. The value is whatever follows the last occurrence of
// the directive pattern on the first line carrying one.
func findOrderIndex(comments []string, namespace, item string) (int, error) {
	for _, block := range comments {
		for _, line := range strings.Split(block, "\n") {
			i := strings.LastIndex(line, orderDirective)
			if i < 0 {
				continue
			}
			value := line[i+len(orderDirective):]
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return 0, &InvalidOrderDirectiveError{Namespace: namespace, Item: item, Value: value}
			}
			return int(n), nil
		}
	}
	return 0, &MissingOrderDirectiveError{Namespace: namespace, Item: item}
}

// orderItems sorts one module level's items. In by-index mode the directive
// values must form a dense 1..N permutation; items land in their claimed
// slots.
func orderItems(items []Item, order Order, namespace string) ([]Item, error) {
	if order == OrderAlphabetical {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Name() < items[j].Name()
		})
		return items, nil
	}

	ordered := make([]Item, len(items))
	for _, item := range items {
		index := item.OrderIndex()
		if index < 1 || index > len(items) {
			return nil, &OrderIndexOutOfRangeError{
				Namespace: namespace,
				Item:      item.Name(),
				Index:     index,
				Count:     len(items),
			}
		}
		if holder := ordered[index-1]; holder != nil {
			return nil, &OrderIndexOutOfRangeError{
				Namespace: namespace,
				Item:      item.Name(),
				Index:     index,
				Count:     len(items),
				Conflict:  holder.Name(),
			}
		}
		ordered[index-1] = item
	}
	return ordered, nil
}
