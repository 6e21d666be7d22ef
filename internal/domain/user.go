package domain

import "strings"

// User is a stored user record. The validate tags are the record schema and
// are checked on every write and again when a record is read back.
type User struct {
	ID    int64  `json:"id" validate:"min=1"`
	Name  string `json:"name" validate:"required,max=100,notdigits"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"min=1,max=120"`
	City  string `json:"city" validate:"omitempty,max=50"`
}

// NewUser is a candidate record before the store assigns it an id.
type NewUser struct {
	Name  string `json:"name" validate:"required,max=100,notdigits"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"min=1,max=120"`
	City  string `json:"city" validate:"omitempty,max=50"`
}

func (n NewUser) Normalize() NewUser {
	n.Name = strings.TrimSpace(n.Name)
	n.Email = strings.TrimSpace(n.Email)
	n.City = strings.TrimSpace(n.City)
	return n
}

func (n NewUser) WithID(id int64) User {
	return User{
		ID:    id,
		Name:  n.Name,
		Email: n.Email,
		Age:   n.Age,
		City:  n.City,
	}
}

// SeedUsers returns the records every fresh store starts with.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Age: 25, City: "Jakarta"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Age: 30, City: "Bandung"},
		{ID: 3, Name: "Bob Wilson", Email: "bob@example.com", Age: 28, City: "Surabaya"},
	}
}
