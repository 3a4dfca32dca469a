package domain

type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"` // Jangan kirim password hash ke client
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Contact      string  `json:"contact"`
	Avatar       *string `json:"avatar,omitempty"`
}

type SignupRequest struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Address  string  `json:"address" binding:"required"`
	Contact  string  `json:"contact" binding:"required"`
	Avatar   *string `json:"avatar"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Identitas yang ditanam di JWT dan dilampirkan ke context request.
type TokenClaims struct {
	UserID   string
	Username string
	Name     string
}
