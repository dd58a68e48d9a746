// Package model defines the data models for the Tijarah client. Each
// entity declares its payload schema explicitly: every field the
// backend accepts appears once, with its validation tags, instead of
// being copied dynamically out of a form map.
package model

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the data payload of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterRequest is the staff registration request body.
type RegisterRequest struct {
	FirstName            string `json:"first_name" validate:"required"`
	LastName             string `json:"last_name" validate:"required"`
	Email                string `json:"email" validate:"required,email"`
	Phone                string `json:"phone" validate:"omitempty,phone"`
	NationalID           string `json:"national_id" validate:"required,national_id"`
	DOB                  string `json:"dob" validate:"required"`
	Password             string `json:"password" validate:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" validate:"required,eqfield=Password"`
	RoleID               int    `json:"role_id" validate:"required,oneof=1 2 3"`
}

// User is the logged-in user object the backend returns and the client
// caches.
type User struct {
	ID        uint64 `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	RoleID    int    `json:"role_id"`
}
