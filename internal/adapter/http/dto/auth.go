package dto

type RegisterRequest struct {
	Username string `json:"username" form:"username" binding:"required,max=255"`
	Email    string `json:"email" form:"email" binding:"required,max=255"`
	Password string `json:"password" form:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserItem struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expires_at"`
	User      UserItem `json:"user"`
}
