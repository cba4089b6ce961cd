package domain

// User represents a registered Maglo account holder.
// Only FullName and Email are persisted locally; the rest is
// whatever the auth endpoints happen to return.
type User struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	IsActive bool   `json:"isActive,omitempty"`
}
