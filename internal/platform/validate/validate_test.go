package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required"`
	}

	errs := Struct(in{})
	assert.Contains(t, errs, "name")

	errs = Struct(in{Name: "   "})
	assert.Contains(t, errs, "name", "whitespace-only counts as empty")

	errs = Struct(in{Name: "ok"})
	assert.False(t, HasErrors(errs))
}

func TestRequiredPointerToZero(t *testing.T) {
	type in struct {
		Stock *int `json:"stock" validate:"required,gte=0"`
	}

	errs := Struct(in{})
	assert.Contains(t, errs, "stock")

	zero := 0
	errs = Struct(in{Stock: &zero})
	assert.False(t, HasErrors(errs), "an explicit zero is present, not missing")
}

func TestNullableSkipsRemainingRules(t *testing.T) {
	type in struct {
		Description string `json:"description" validate:"nullable,min=10"`
	}

	assert.False(t, HasErrors(Struct(in{})))
	assert.True(t, HasErrors(Struct(in{Description: "short"})))
	assert.False(t, HasErrors(Struct(in{Description: "long enough text"})))
}

func TestEmail(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}

	assert.True(t, HasErrors(Struct(in{Email: "not-an-email"})))
	assert.False(t, HasErrors(Struct(in{Email: "ana@example.com"})))
}

func TestMinMaxOnStrings(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"min=2,max=5"`
	}

	assert.True(t, HasErrors(Struct(in{Name: "a"})))
	assert.True(t, HasErrors(Struct(in{Name: "abcdef"})))
	assert.False(t, HasErrors(Struct(in{Name: "abc"})))
}

func TestGteOnNumbers(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"gte=0"`
	}

	assert.True(t, HasErrors(Struct(in{Price: -1})))
	assert.False(t, HasErrors(Struct(in{Price: 0})))
	assert.False(t, HasErrors(Struct(in{Price: 99.5})))
}

func TestInRule(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=admin,staff"`
	}

	errs := Struct(in{Role: "root"})
	assert.Contains(t, errs, "role")

	assert.False(t, HasErrors(Struct(in{Role: "admin"})))
	assert.False(t, HasErrors(Struct(in{Role: "staff"})),
		"the second in= option must not be split off as a separate rule")
}

func TestPointerFieldRules(t *testing.T) {
	type in struct {
		MinStock *int `json:"min_stock" validate:"nullable,gte=0"`
	}

	assert.False(t, HasErrors(Struct(in{})), "nil pointer passes nullable")

	neg := -3
	assert.True(t, HasErrors(Struct(in{MinStock: &neg})))

	ok := 7
	assert.False(t, HasErrors(Struct(in{MinStock: &ok})))
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}

	errs := Struct(in{})
	assert.Equal(t, "The email field is required.", errs["email"])
}

func TestFieldNameFromJSONTag(t *testing.T) {
	type in struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `validate:"required"`
	}

	errs := Struct(in{})
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "lastname", "falls back to the lowercased field name")
}
