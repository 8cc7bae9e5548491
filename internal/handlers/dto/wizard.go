package dto

// WizardStepRequest — частичное обновление состояния мастера перед Next
type WizardStepRequest struct {
	Name             *string  `json:"name"`
	ClassYear        *string  `json:"class_year"`
	Major            *string  `json:"major"`
	Photos           []string `json:"photos"`
	Vibe             *string  `json:"vibe"`
	Intention        *string  `json:"intention"`
	Gender           *string  `json:"gender"`
	GenderPreference *string  `json:"gender_preference"`
	Bio              *string  `json:"bio"`
	Interests        []string `json:"interests"`
	Clubs            []string `json:"clubs"`
	Building         *string  `json:"building"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
}

// WizardSubmitRequest — финальный сабмит: фото уходят base64-пачкой,
// загрузка каждого best-effort
type WizardSubmitRequest struct {
	PhotosBase64 []string `json:"photos_base64"`
}
