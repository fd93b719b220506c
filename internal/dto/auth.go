package dto

// EmailLoginResponse is returned by the email login/register endpoint.
// UserID duplicates User.ID for callers that only track the id.
type EmailLoginResponse struct {
	Token  string  `json:"token"`
	UserID uint64  `json:"userId"`
	User   UserDTO `json:"user"`
}

// WalletLoginResponse is returned by the wallet login/register endpoint.
type WalletLoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
