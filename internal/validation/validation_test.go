package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/userapi/internal/domain"
)

func validUser() domain.NewUser {
	return domain.NewUser{Name: "Amy Lee", Email: "amy@example.com", Age: 22}
}

func TestStruct_Valid(t *testing.T) {
	v := New()
	assert.True(t, v.Struct(validUser()).Empty())

	withCity := validUser()
	withCity.City = strings.Repeat("c", 50)
	assert.True(t, v.Struct(withCity).Empty())
}

func TestStruct_DigitsOnlyName(t *testing.T) {
	in := validUser()
	in.Name = "12345"

	errs := New().Struct(in)
	require.Contains(t, errs, "name")
	assert.Equal(t, []string{"Must not consist of digits only."}, errs["name"])
}

func TestStruct_NonASCIIDigitsOnlyName(t *testing.T) {
	v := New()
	for _, name := range []string{"١٢٣", "४२", "１２３"} {
		in := validUser()
		in.Name = name
		assert.Contains(t, v.Struct(in), "name", name)
	}

	in := validUser()
	in.Name = "Agent ٤٧"
	assert.True(t, v.Struct(in).Empty())
}

func TestStruct_AgeBounds(t *testing.T) {
	v := New()
	for _, age := range []int{0, 121, -5} {
		in := validUser()
		in.Age = age
		errs := v.Struct(in)
		assert.Contains(t, errs, "age", "age %d", age)
	}
	for _, age := range []int{1, 120} {
		in := validUser()
		in.Age = age
		assert.True(t, v.Struct(in).Empty(), "age %d", age)
	}
}

func TestStruct_ReportsEveryFailingField(t *testing.T) {
	errs := New().Struct(domain.NewUser{
		Name:  strings.Repeat("n", 101),
		Email: "not-an-email",
		Age:   200,
		City:  strings.Repeat("c", 51),
	})

	assert.Equal(t, []string{"age", "city", "email", "name"}, errs.Fields())
	assert.Equal(t, []string{"Ensure this field has no more than 100 characters."}, errs["name"])
	assert.Equal(t, []string{"Ensure this value is less than or equal to 120."}, errs["age"])
	assert.Equal(t, []string{"Enter a valid email address."}, errs["email"])
}

func TestStruct_StoredRecord(t *testing.T) {
	v := New()
	assert.True(t, v.Struct(domain.SeedUsers()[0]).Empty())

	broken := domain.User{ID: 0, Name: "Amy", Email: "amy@example.com", Age: 30}
	assert.Contains(t, v.Struct(broken), "id")
}

func TestDecodeNewUser_Coercion(t *testing.T) {
	in, errs := DecodeNewUser(map[string]any{
		"name":  "  Amy Lee ",
		"email": "amy@example.com ",
		"age":   "22",
		"city":  " Medan",
	})
	require.True(t, errs.Empty(), "unexpected errors: %v", errs)
	assert.Equal(t, domain.NewUser{Name: "Amy Lee", Email: "amy@example.com", Age: 22, City: "Medan"}, in)

	in, errs = DecodeNewUser(map[string]any{
		"name":  "Amy",
		"email": "amy@example.com",
		"age":   json.Number("40"),
	})
	require.True(t, errs.Empty())
	assert.Equal(t, 40, in.Age)
	assert.Empty(t, in.City)
}

func TestDecodeNewUser_WholeNumberFloats(t *testing.T) {
	for _, age := range []any{json.Number("22.0"), json.Number("2.2e1"), float64(22)} {
		in, errs := DecodeNewUser(map[string]any{"name": "Amy", "email": "amy@example.com", "age": age})
		require.True(t, errs.Empty(), "age %v: %v", age, errs)
		assert.Equal(t, 22, in.Age, "age %v", age)
	}

	for _, age := range []any{json.Number("22.5"), json.Number("1e12")} {
		_, errs := DecodeNewUser(map[string]any{"name": "Amy", "email": "amy@example.com", "age": age})
		assert.Equal(t, []string{msgNotInteger}, errs["age"], "age %v", age)
	}
}

func TestDecodeNewUser_TypeErrors(t *testing.T) {
	_, errs := DecodeNewUser(map[string]any{
		"name":  []any{"x"},
		"email": "amy@example.com",
		"age":   22.5,
	})
	assert.Equal(t, []string{msgNotString}, errs["name"])
	assert.Equal(t, []string{msgNotInteger}, errs["age"])
	assert.NotContains(t, errs, "email")
}

func TestNewUser_MissingFields(t *testing.T) {
	_, errs := New().NewUser(nil)

	assert.Equal(t, []string{"age", "email", "name"}, errs.Fields())
	for _, field := range errs.Fields() {
		assert.Equal(t, []string{msgRequired}, errs[field], field)
	}
}

func TestNewUser_TypeErrorWinsOverRule(t *testing.T) {
	_, errs := New().NewUser(map[string]any{
		"name":  "Amy",
		"email": "amy@example.com",
		"age":   "abc",
	})
	assert.Equal(t, []string{msgNotInteger}, errs["age"])
	assert.Len(t, errs, 1)
}

func TestFieldErrors_Merge(t *testing.T) {
	a := FieldErrors{"name": {"one"}}
	a.Merge(FieldErrors{"name": {"two"}, "age": {"three"}})

	assert.Equal(t, []string{"one", "two"}, a["name"])
	assert.Equal(t, []string{"three"}, a["age"])
}
