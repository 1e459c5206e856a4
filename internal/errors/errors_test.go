package errors

import (
	"fmt"
	"testing"
)

func TestBuilderDefaults(t *testing.T) {
	t.Parallel()

	err := Newf("something broke").Build()

	if err.Component != ComponentUnknown {
		t.Errorf("expected component %q, got %q", ComponentUnknown, err.Component)
	}
	if err.Category != CategoryGeneric {
		t.Errorf("expected category %q, got %q", CategoryGeneric, err.Category)
	}
	if err.Error() != "something broke" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestBuilderContext(t *testing.T) {
	t.Parallel()

	err := Newf("move failed").
		Component("router").
		Category(CategoryRouting).
		Context("destination", "/out/Sorted/Canids/Wolf").
		FileContext("/in/clip.mp4", 1024).
		Build()

	ctx := err.GetContext()
	if ctx["destination"] != "/out/Sorted/Canids/Wolf" {
		t.Errorf("missing destination context: %v", ctx)
	}
	if ctx["file_path"] != "/in/clip.mp4" {
		t.Errorf("missing file context: %v", ctx)
	}
	if ctx["file_size"] != int64(1024) {
		t.Errorf("missing file size context: %v", ctx)
	}

	// Mutating the copy must not affect the error.
	ctx["destination"] = "elsewhere"
	if err.GetContext()["destination"] != "/out/Sorted/Canids/Wolf" {
		t.Error("context copy leaked back into the error")
	}
}

func TestIsMatchesWrappedSentinel(t *testing.T) {
	t.Parallel()

	err := New(fmt.Errorf("routing %s: %w", "clip.mp4", ErrDestinationExists)).
		Component("router").
		Category(CategoryRouting).
		Build()

	if !Is(err, ErrDestinationExists) {
		t.Error("expected errors.Is to match ErrDestinationExists through the wrapper")
	}
	if Is(err, ErrInvalidPolicy) {
		t.Error("unexpected match against unrelated sentinel")
	}
}

func TestIsMatchesCategory(t *testing.T) {
	t.Parallel()

	a := Newf("a").Category(CategoryTaxonomy).Build()
	b := Newf("b").Category(CategoryTaxonomy).Build()
	c := Newf("c").Category(CategoryRouting).Build()

	if !Is(a, b) {
		t.Error("expected same-category enhanced errors to match")
	}
	if Is(a, c) {
		t.Error("expected different-category enhanced errors not to match")
	}
}
