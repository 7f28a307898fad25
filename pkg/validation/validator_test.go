package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,pwd"`
	Category string   `json:"spendingCategory" validate:"omitempty,category"`
	Spending float64  `json:"spending" validate:"gte=0"`
	Tags     []string `json:"tags" validate:"max=2"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	Register(v)
	return v
}

func TestToDetailsUsesJSONNames(t *testing.T) {
	err := newValidator().Struct(sample{Email: "nope", Password: strings.Repeat("p", MaxPasswordBytes+1), Category: "Shopping", Spending: -1, Tags: []string{"a", "b", "c"}})
	details := ToDetails(err)

	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at most 72 bytes long", details["password"])
	assert.Equal(t, "must be one of: Accommodation, Food, Transport, Activities", details["spendingCategory"])
	assert.Equal(t, "must be greater than or equal to 0", details["spending"])
	assert.Equal(t, "must contain at most 2 items", details["tags"])
}

func TestCategoryAliasAcceptsKnownValues(t *testing.T) {
	v := newValidator()
	for _, c := range []string{"", "Accommodation", "Food", "Transport", "Activities"} {
		assert.NoError(t, v.Struct(sample{Email: "a@b.co", Password: "secret1", Category: c}), c)
	}
}

func TestPasswordOnlyBoundedByBcrypt(t *testing.T) {
	v := newValidator()
	for _, p := range []string{"1", "abc", strings.Repeat("p", MaxPasswordBytes)} {
		assert.NoError(t, v.Struct(sample{Email: "a@b.co", Password: p}), p)
	}
	// multi-byte runes count by bytes
	assert.Error(t, v.Struct(sample{Email: "a@b.co", Password: strings.Repeat("é", 37)}))
	assert.Error(t, v.Struct(sample{Email: "a@b.co", Password: ""}))
}

func TestToDetailsJSONErrors(t *testing.T) {
	var dst struct {
		Spending float64 `json:"spending"`
	}
	err := json.Unmarshal([]byte(`{"spending":"lots"}`), &dst)
	assert.Equal(t, map[string]string{"spending": "must be a float64"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &dst)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Nil(t, ToDetails(nil))
}
