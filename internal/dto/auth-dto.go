package dto

type LoginDTO struct {
	Pin string `json:"pin" validate:"required,min=4,max=32"`
}

type TokenDTO struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}
