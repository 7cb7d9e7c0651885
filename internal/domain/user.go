package domain

type User struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Photo     string `json:"photo,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}
