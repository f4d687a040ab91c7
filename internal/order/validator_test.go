package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "emart-gateway/pkg/domain-errors"
)

func f64(v float64) *float64 { return &v }

func validSubmission() Submission {
	return Submission{
		UserID: "u1",
		Items: []LineItem{
			{ProductID: 1, Name: "Laptop", Quantity: 1, Price: f64(1200)},
		},
		Total: f64(1240),
	}
}

func TestValidateSubmissionAccepts(t *testing.T) {
	require.NoError(t, ValidateSubmission(validSubmission()))
}

func TestValidateSubmissionRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Submission)
		message string
	}{
		{
			name:    "missing user_id",
			mutate:  func(s *Submission) { s.UserID = "" },
			message: "missing or invalid user_id",
		},
		{
			name:    "empty items",
			mutate:  func(s *Submission) { s.Items = nil },
			message: "items must be a non-empty list",
		},
		{
			name:    "non-numeric total",
			mutate:  func(s *Submission) { s.Total = nil },
			message: "total must be a number",
		},
		{
			name:    "item without product_id",
			mutate:  func(s *Submission) { s.Items[0].ProductID = nil },
			message: "missing product_id",
		},
		{
			name:    "item without name",
			mutate:  func(s *Submission) { s.Items[0].Name = "" },
			message: "missing name",
		},
		{
			name:    "zero quantity",
			mutate:  func(s *Submission) { s.Items[0].Quantity = 0 },
			message: "quantity must be greater than zero",
		},
		{
			name:    "negative quantity",
			mutate:  func(s *Submission) { s.Items[0].Quantity = -3 },
			message: "quantity must be greater than zero",
		},
		{
			name:    "item without price",
			mutate:  func(s *Submission) { s.Items[0].Price = nil },
			message: "price must be a number",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			err := ValidateSubmission(sub)

			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestValidateSubmissionFirstViolationWins(t *testing.T) {
	// Both user_id and total are broken; the user_id check runs first.
	sub := validSubmission()
	sub.UserID = ""
	sub.Total = nil

	err := ValidateSubmission(sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_id")
	assert.NotContains(t, err.Error(), "total")
}
