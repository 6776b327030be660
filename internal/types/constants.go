package types

const ContextUserKey = "user"

// UserResponse is the account shape returned by auth endpoints. The password
// hash never leaves the server.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}
