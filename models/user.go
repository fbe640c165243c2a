package models

type User struct {
	UserID      int64  `json:"userId"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Title       string `json:"title"`
	Role        string `json:"role"`
}

func (u User) Initial() string {
	for _, r := range u.FirstName {
		return string(r)
	}
	for _, r := range u.Username {
		return string(r)
	}
	return "?"
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   int64  `json:"userId"`
}

type ChangePasswordRequest struct {
	Username        string `json:"username" validate:"required"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// MessageResponse is the generic {message} body the backend returns for commands.
type MessageResponse struct {
	Message string `json:"message"`
}
