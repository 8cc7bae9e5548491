package wizard

import (
	"errors"
	"fmt"
)

// Линейный мастер заполнения анкеты: шесть шагов, вперёд только через
// валидацию текущего шага, назад с первого шага — выход из мастера

type Step int

const (
	StepBasics Step = iota
	StepPhotos
	StepVibe
	StepInterests
	StepLocation
	StepReview
)

var stepNames = [...]string{
	StepBasics:    "basics",
	StepPhotos:    "photos",
	StepVibe:      "vibe",
	StepInterests: "interests",
	StepLocation:  "location",
	StepReview:    "review",
}

func (s Step) String() string {
	if s < StepBasics || s > StepReview {
		return "unknown"
	}
	return stepNames[s]
}

// TotalSteps — число шагов мастера
const TotalSteps = int(StepReview) + 1

var (
	ErrNameRequired      = errors.New("name is required")
	ErrClassYearRequired = errors.New("class year is required")
	ErrMajorRequired     = errors.New("major is required")
	ErrPhotoRequired     = errors.New("at least one photo is required")
	ErrGenderRequired    = errors.New("gender and gender preference are required")
)

// State — накопленные данные анкеты и текущий шаг
type State struct {
	Step Step `json:"step"`

	Name      string `json:"name"`
	ClassYear string `json:"class_year"`
	Major     string `json:"major"`

	Photos []string `json:"photos"`

	Vibe             string `json:"vibe"`
	Intention        string `json:"intention"`
	Gender           string `json:"gender"`
	GenderPreference string `json:"gender_preference"`
	Bio              string `json:"bio"`

	Interests []string `json:"interests"`
	Clubs     []string `json:"clubs"`

	Building  string  `json:"building"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate проверяет обязательные поля шага
func (s *State) Validate(step Step) error {
	switch step {
	case StepBasics:
		if s.Name == "" {
			return ErrNameRequired
		}
		if s.ClassYear == "" {
			return ErrClassYearRequired
		}
		if s.Major == "" {
			return ErrMajorRequired
		}
	case StepPhotos:
		if len(s.Photos) == 0 {
			return ErrPhotoRequired
		}
	case StepVibe:
		if s.Gender == "" || s.GenderPreference == "" {
			return ErrGenderRequired
		}
	case StepInterests, StepLocation, StepReview:
		// Необязательные шаги
	default:
		return fmt.Errorf("unknown step %d", step)
	}
	return nil
}

// Next продвигает мастер на шаг вперёд. При ошибке валидации
// шаг не меняется
func (s *State) Next() error {
	if err := s.Validate(s.Step); err != nil {
		return err
	}
	if s.Step < StepReview {
		s.Step++
	}
	return nil
}

// Back отступает на шаг. С первого шага возвращает true — выход из мастера
func (s *State) Back() bool {
	if s.Step == StepBasics {
		return true
	}
	s.Step--
	return false
}

// AtReview сообщает, дошёл ли мастер до финального шага
func (s *State) AtReview() bool {
	return s.Step == StepReview
}
