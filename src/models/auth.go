package models

// Actor is the authenticated caller as read from the access token.
type Actor struct {
	ID    string
	Email string
	Role  Role
}

func (a Actor) IsSuperAdmin() bool { return a.Role == RoleSuperAdmin }

// LoginResponse carries the token pair followed by the profile fields.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	*Student
}
