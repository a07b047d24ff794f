package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidate_OptionalFields(t *testing.T) {
	s := Schema{
		"Scale": Optional(Float()),
		"Seed":  Optional(String()),
	}
	if err := Validate(s, map[string]any{"Seed": "main"}); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_RequiredField(t *testing.T) {
	s := Schema{"Name": String()}

	err := Validate(s, map[string]any{})
	errs := ValidationErrors(err)
	if len(errs) != 1 {
		t.Fatalf("ValidationErrors() = %v, want 1 error", errs)
	}
	var verr *ValidationError
	if !errors.As(errs[0], &verr) || verr.Key != "Name" || verr.Reason != "required" {
		t.Errorf("error = %v, want required Name", errs[0])
	}
}

func TestValidate_SortedAndUnwrappable(t *testing.T) {
	s := Schema{
		"Octaves":          Optional(Int()),
		"DistanceFunction": Optional(Enum("Euclidean")),
		"Lacunarity":       Optional(Float()),
	}
	data := map[string]any{
		"Octaves":          "two",
		"DistanceFunction": "Hamming",
		"Lacunarity":       true,
	}

	err := Validate(s, data)
	errs := ValidationErrors(err)
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3", len(errs))
	}
	keys := []string{}
	for _, e := range errs {
		keys = append(keys, e.(*ValidationError).Key)
	}
	want := []string{"DistanceFunction", "Lacunarity", "Octaves"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys = %v, want %v", keys, want)
		}
	}
	if !errors.Is(err, ErrNotAllowed) {
		t.Error("aggregate does not expose ErrNotAllowed")
	}
}

func TestSchemaJSON(t *testing.T) {
	s := Schema{
		"Scale":  Optional(Float()),
		"Inputs": Optional(Slice(OneOf(Float(), Object()))),
	}
	raw, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"Inputs":"[number|object]?","Scale":"number?"}`; string(raw) != want {
		t.Errorf("Marshal = %s, want %s", raw, want)
	}

	var back Schema
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if back["Inputs"].Name() != s["Inputs"].Name() || !IsOptional(back["Scale"]) {
		t.Errorf("round trip mismatch: %v", back)
	}
}
