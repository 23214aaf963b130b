package fintrack

// User is the session identity. It is not a secured identity.
type User struct {
	Username   string `json:"username"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}
