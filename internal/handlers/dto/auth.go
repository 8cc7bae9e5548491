package dto

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=50"`
	ClassYear   string `json:"class_year"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type PhoneRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
}

type VerifyOtpRequest struct {
	Phone string `json:"phone" binding:"required,e164"`
	Code  string `json:"code" binding:"required,len=6"`
}

type GoogleRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}
