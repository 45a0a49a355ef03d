package validate_test

import (
	"testing"

	"github.com/handcraftedhaven/haven/pkg/validate"
)

type reviewInput struct {
	ReviewerName string `json:"reviewer_name" validate:"required,min=2,max=100"`
	Rating       int    `json:"rating"        validate:"required,integer,gte=1,lte=5"`
	Comment      string `json:"comment"       validate:"nullable,max=2000"`
}

func TestValidReview(t *testing.T) {
	errs := validate.Struct(reviewInput{
		ReviewerName: "Maria",
		Rating:       4,
		Comment:      "Beautiful craftsmanship.",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(reviewInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["reviewer_name"]; !ok {
		t.Error("expected reviewer_name to be required")
	}
	if _, ok := errs["rating"]; !ok {
		t.Error("expected rating to be required")
	}
}

func TestRatingBounds(t *testing.T) {
	for _, rating := range []int{-1, 6, 100} {
		errs := validate.Struct(reviewInput{ReviewerName: "Maria", Rating: rating})
		if _, ok := errs["rating"]; !ok {
			t.Errorf("expected rating %d to fail", rating)
		}
	}
	for rating := 1; rating <= 5; rating++ {
		errs := validate.Struct(reviewInput{ReviewerName: "Maria", Rating: rating})
		if _, ok := errs["rating"]; ok {
			t.Errorf("expected rating %d to pass, got: %v", rating, errs["rating"])
		}
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected invalid email to fail")
	}
	if errs := validate.Struct(in{Email: "artisan@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestInRuleKeepsCommaParams(t *testing.T) {
	type in struct {
		Role string `json:"role" validate:"required,in=buyer,seller,max=20"`
	}
	if errs := validate.Struct(in{Role: "admin"}); !validate.HasErrors(errs) {
		t.Error("expected role outside the list to fail")
	}
	if errs := validate.Struct(in{Role: "seller"}); validate.HasErrors(errs) {
		t.Errorf("expected seller to pass, got: %v", errs)
	}
}

func TestUUIDRule(t *testing.T) {
	type in struct {
		Key string `json:"key" validate:"required,uuid"`
	}
	for _, bad := range []string{
		"not-a-uuid",
		"7f9c24e8ef4c4f0f91b6a55d5c9a3f2b",
		"7f9c24e8-ef4c-4f0f-91b6-a55d5c9a3f2g",
	} {
		if errs := validate.Struct(in{Key: bad}); !validate.HasErrors(errs) {
			t.Errorf("expected %q to fail", bad)
		}
	}
	if errs := validate.Struct(in{Key: "7f9c24e8-ef4c-4f0f-91b6-a55d5c9a3f2b"}); validate.HasErrors(errs) {
		t.Errorf("expected canonical uuid to pass, got: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Website string `json:"website" validate:"nullable,url"`
	}
	if errs := validate.Struct(in{Website: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Website: "not-a-url"}); !validate.HasErrors(errs) {
		t.Error("expected invalid URL to fail")
	}
}

func TestPriceGreaterThanZero(t *testing.T) {
	type in struct {
		Price float64 `json:"price" validate:"required,numeric,gt=0"`
	}
	if errs := validate.Struct(in{Price: -3}); !validate.HasErrors(errs) {
		t.Error("expected negative price to fail")
	}
	if errs := validate.Struct(in{Price: 24.99}); validate.HasErrors(errs) {
		t.Errorf("expected positive price to pass: %v", errs)
	}
}

func TestBetweenOnStringLength(t *testing.T) {
	type in struct {
		Bio string `json:"bio" validate:"required,between=10,500"`
	}
	if errs := validate.Struct(in{Bio: "too short"}); !validate.HasErrors(errs) {
		t.Error("expected short bio to fail")
	}
	if errs := validate.Struct(in{Bio: "Hand-thrown stoneware from a small studio."}); validate.HasErrors(errs) {
		t.Errorf("expected bio to pass: %v", errs)
	}
}
