package domain

import (
	"math"
	"time"
)

// TransactionType partitions transactions into money in and money out.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ValidType reports whether t is a known transaction type.
func ValidType(t TransactionType) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is one income or expense record owned by a single user.
// The stored sign of Amount is always derived from Type via SignedAmount:
// expenses are negative, income is positive. Type is the canonical field.
type Transaction struct {
	ID           string          `bson:"_id" json:"id"`
	UserID       string          `bson:"user" json:"user"`
	Text         string          `bson:"text" json:"text"`
	Amount       float64         `bson:"amount" json:"amount"`
	Category     Category        `bson:"category" json:"category"`
	Type         TransactionType `bson:"type" json:"type"`
	AISuggested  bool            `bson:"aiSuggested" json:"aiSuggested"`
	AIConfidence float64         `bson:"aiConfidence" json:"aiConfidence"`

	// OriginalCategory keeps the last AI-suggested category when the user
	// manually overrides it. Nil otherwise.
	OriginalCategory *Category `bson:"originalCategory,omitempty" json:"originalCategory,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SignedAmount normalizes a user-supplied amount to the sign implied by the
// transaction type. This is the single place the sign/type invariant is
// enforced; every create and update path goes through it.
func SignedAmount(t TransactionType, amount float64) float64 {
	if t == TypeIncome {
		return math.Abs(amount)
	}
	return -math.Abs(amount)
}

// Magnitude returns the absolute amount of the transaction.
func (t *Transaction) Magnitude() float64 {
	return math.Abs(t.Amount)
}

// TransactionUpdate carries the fields of a partial update. Nil means
// "leave unchanged".
type TransactionUpdate struct {
	Text     *string
	Amount   *float64
	Category *Category
	Type     *TransactionType
}

// Apply mutates the transaction with the given update. Changing the category
// away from an AI-suggested value flips AISuggested off and preserves the
// prior value in OriginalCategory. The amount sign is renormalized so the
// sign/type invariant survives any combination of changed fields.
func (t *Transaction) Apply(u TransactionUpdate, now time.Time) {
	if u.Type != nil {
		t.Type = *u.Type
	}
	if u.Text != nil {
		t.Text = *u.Text
	}
	if u.Category != nil && *u.Category != t.Category {
		if t.AISuggested {
			prev := t.Category
			t.OriginalCategory = &prev
			t.AISuggested = false
		}
		t.Category = *u.Category
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	t.Amount = SignedAmount(t.Type, t.Amount)
	t.UpdatedAt = now
}
