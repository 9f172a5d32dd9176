package models

// Principal is the resolved identity of the acting user. The moderator flag
// is asserted by the identity provider and trusted as-is; there is no
// server-side authorization store behind it.
type Principal struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsModerator bool   `json:"is_moderator"`
}
