package domain

// Principal is the authenticated identity attached to a request.
// It is rebuilt on every request from a validated token or from a
// successful login and is never persisted.
type Principal struct {
	ID        UserID `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`
}

// PrincipalOf builds the Principal for a stored user.
func PrincipalOf(u *User) Principal {
	return Principal{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Admin:     u.Admin,
	}
}
