package wizard

import "testing"

func filledState() *State {
	return &State{
		Name:             "alice",
		ClassYear:        "2027",
		Major:            "Linguistics",
		Photos:           []string{"https://cdn.example.com/alice.jpg"},
		Gender:           "female",
		GenderPreference: "everyone",
	}
}

func TestNextBlockedByValidation(t *testing.T) {
	s := &State{}

	if err := s.Next(); err != ErrNameRequired {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if s.Step != StepBasics {
		t.Fatalf("failed validation must not move the step, got %v", s.Step)
	}

	s.Name = "alice"
	if err := s.Next(); err != ErrClassYearRequired {
		t.Fatalf("expected ErrClassYearRequired, got %v", err)
	}
	if s.Step != StepBasics {
		t.Fatalf("step must stay at basics, got %v", s.Step)
	}
}

func TestNextWalksToReview(t *testing.T) {
	s := filledState()

	for i := 0; i < TotalSteps-1; i++ {
		if err := s.Next(); err != nil {
			t.Fatalf("next from %v: %v", s.Step, err)
		}
	}

	if !s.AtReview() {
		t.Fatalf("expected review step, got %v", s.Step)
	}
	if int(s.Step)+1 != TotalSteps {
		t.Fatalf("review must be step %d of %d", int(s.Step)+1, TotalSteps)
	}

	// С финального шага дальше некуда
	if err := s.Next(); err != nil {
		t.Fatalf("next at review: %v", err)
	}
	if !s.AtReview() {
		t.Fatal("step must not move past review")
	}
}

func TestBackFromBasicsExits(t *testing.T) {
	s := &State{}

	if exited := s.Back(); !exited {
		t.Fatal("back from the first step must signal exit")
	}

	s = filledState()
	if err := s.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if exited := s.Back(); exited {
		t.Fatal("back from a later step must not exit")
	}
	if s.Step != StepBasics {
		t.Fatalf("expected basics after back, got %v", s.Step)
	}
}

func TestValidatePerStep(t *testing.T) {
	s := filledState()
	s.Photos = nil
	if err := s.Validate(StepPhotos); err != ErrPhotoRequired {
		t.Fatalf("expected ErrPhotoRequired, got %v", err)
	}

	s = filledState()
	s.Gender = ""
	if err := s.Validate(StepVibe); err != ErrGenderRequired {
		t.Fatalf("expected ErrGenderRequired, got %v", err)
	}

	// Необязательные шаги проходят и с пустыми полями
	s = &State{}
	for _, step := range []Step{StepInterests, StepLocation, StepReview} {
		if err := s.Validate(step); err != nil {
			t.Fatalf("step %v must be optional: %v", step, err)
		}
	}
}

func TestStepString(t *testing.T) {
	if StepBasics.String() != "basics" || StepReview.String() != "review" {
		t.Fatal("step names out of sync")
	}
	if Step(99).String() != "unknown" {
		t.Fatal("out-of-range step must be unknown")
	}
}
