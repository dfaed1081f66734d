package dto

// CredentialsRequest is the body of register and login.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Status  string `json:"status"`
}
