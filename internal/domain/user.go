package domain

// Account Model, shared by the admin, vendor and user tables
type Account struct {
	Username string `json:"username"` // Unique across all three tables
	Password string `json:"password"` // Bcrypt hash, never rendered
	Name     string `json:"name"`     // Display name
	Email    string `json:"email"`    // Contact email
	Phone    string `json:"phone"`    // Contact phone, empty for admins
	Role     Role   `json:"role"`     // Role tag
}

// Profile is the public view of an Account
type Profile struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role"`
}

// Profile strips the password hash
func (a Account) Profile() Profile {
	return Profile{
		Username: a.Username,
		Name:     a.Name,
		Email:    a.Email,
		Phone:    a.Phone,
		Role:     a.Role.String(),
	}
}
