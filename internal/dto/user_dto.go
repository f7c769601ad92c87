package dto

type RegisterUserRequest struct {
	UID      string `json:"uid"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

type UpdateUserRequest struct {
	Email string `json:"email"`
}
