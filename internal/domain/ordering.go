package domain

import "fmt"

// ValidationError reports a rejected value before any persistence happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSiblingOrders checks that order values are unique within one
// sibling set. Sparse (non-contiguous) orderings are valid.
func ValidateSiblingOrders(field string, orders []int) error {
	seen := make(map[int]struct{}, len(orders))
	for _, o := range orders {
		if _, dup := seen[o]; dup {
			return &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate order value %d among siblings", o),
			}
		}
		seen[o] = struct{}{}
	}
	return nil
}

// ResolveSiblingOrders validates caller-supplied order values for one
// sibling set and auto-assigns the next integer in sequence to members
// that omitted one. The result is positionally aligned with the input.
func ResolveSiblingOrders(field string, supplied []*int) ([]int, error) {
	taken := make(map[int]struct{}, len(supplied))
	for _, o := range supplied {
		if o == nil {
			continue
		}
		if _, dup := taken[*o]; dup {
			return nil, &ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate order value %d among siblings", *o),
			}
		}
		taken[*o] = struct{}{}
	}

	resolved := make([]int, len(supplied))
	next := 0
	for i, o := range supplied {
		if o != nil {
			resolved[i] = *o
			continue
		}
		for {
			if _, used := taken[next]; !used {
				break
			}
			next++
		}
		resolved[i] = next
		taken[next] = struct{}{}
	}
	return resolved, nil
}
