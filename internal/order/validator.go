package order

import (
	"fmt"

	dErrors "emart-gateway/pkg/domain-errors"
)

// ValidateSubmission checks the structural and semantic shape of a
// submission before any downstream call. Checks run in a fixed order and
// the first violation wins; there is no partial validation.
func ValidateSubmission(sub Submission) error {
	if sub.UserID == "" {
		return dErrors.New(dErrors.CodeValidation, "missing or invalid user_id")
	}
	if len(sub.Items) == 0 {
		return dErrors.New(dErrors.CodeValidation, "items must be a non-empty list")
	}
	if sub.Total == nil {
		return dErrors.New(dErrors.CodeValidation, "total must be a number")
	}
	for i, item := range sub.Items {
		if violation := item.violation(); violation != "" {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("invalid item at index %d: %s", i, violation))
		}
	}
	return nil
}

func (item LineItem) violation() string {
	switch {
	case item.ProductID == nil:
		return "missing product_id"
	case item.Name == "":
		return "missing name"
	case item.Quantity <= 0:
		return "quantity must be greater than zero"
	case item.Price == nil:
		return "price must be a number"
	default:
		return ""
	}
}
