package validate_test

import (
	"errors"
	"testing"

	"github.com/backendren/Web-Directory/internal/errs"
	"github.com/backendren/Web-Directory/internal/model"
	"github.com/backendren/Web-Directory/internal/validate"
)

func TestDraft_Valid(t *testing.T) {
	v := validate.New()

	err := v.Draft(model.Draft{Name: "Go", URL: "https://go.dev", Tags: []string{"go"}})
	if err != nil {
		t.Errorf("expected valid draft, got %v", err)
	}
}

func TestDraft_EmptyName(t *testing.T) {
	v := validate.New()

	err := v.Draft(model.Draft{Name: "", URL: "https://go.dev"})
	if !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	var domainErr *errs.Error
	if !errors.As(err, &domainErr) {
		t.Fatal("expected *errs.Error")
	}
	if domainErr.Fields["name"] != "is required" {
		t.Errorf("expected name field error, got %v", domainErr.Fields)
	}
}

func TestDraft_MalformedURL(t *testing.T) {
	v := validate.New()

	for _, raw := range []string{"not a url", "example.com", "mailto:me@example.com", "/relative/path"} {
		err := v.Draft(model.Draft{Name: "x", URL: raw})
		if !errors.Is(err, errs.ErrValidation) {
			t.Errorf("expected validation error for %q, got %v", raw, err)
		}
	}
}

func TestPatch_CreatedAtOverride(t *testing.T) {
	v := validate.New()

	patch := model.Patch{Name: "x", URL: "https://example.com", CreatedAt: "2024-03-07 09:05"}
	if err := v.Patch(patch); err != nil {
		t.Errorf("expected valid patch, got %v", err)
	}

	patch.CreatedAt = "2024-03-07T09:05:00Z"
	if err := v.Patch(patch); !errors.Is(err, errs.ErrValidation) {
		t.Errorf("expected validation error for wrong layout, got %v", err)
	}
}

func TestPatch_EmptyCreatedAtIsAllowed(t *testing.T) {
	v := validate.New()

	err := v.Patch(model.Patch{Name: "x", URL: "https://example.com"})
	if err != nil {
		t.Errorf("expected patch without override to be valid, got %v", err)
	}
}
