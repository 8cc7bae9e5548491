package dto

// UpdateProfileRequest — частичное обновление: nil-поля не трогаются
type UpdateProfileRequest struct {
	DisplayName      *string  `json:"display_name"`
	ClassYear        *string  `json:"class_year"`
	Role             *string  `json:"role"`
	Vibe             *string  `json:"vibe"`
	Intention        *string  `json:"intention"`
	Gender           *string  `json:"gender"`
	GenderPreference *string  `json:"gender_preference"`
	Bio              *string  `json:"bio"`
	Major            *string  `json:"major"`
	Interests        []string `json:"interests"`
	Clubs            []string `json:"clubs"`
}

type LocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"required,min=-180,max=180"`
}

type SettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}

type PhotoUploadRequest struct {
	Data string `json:"data" binding:"required"`
}

type PhotoDeleteRequest struct {
	URL string `json:"url" binding:"required"`
}

type ReportRequest struct {
	ReportedID string `json:"reported_id" binding:"required,uuid"`
	Reason     string `json:"reason" binding:"required"`
	Details    string `json:"details"`
}
