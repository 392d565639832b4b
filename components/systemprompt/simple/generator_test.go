package simple

import (
	"fmt"
	"strings"
	"testing"
)

type staticProvider struct {
	title string
	info  string
}

func (p staticProvider) Title() string { return p.title }

func (p staticProvider) Info() string { return p.info }

func TestGenerate(t *testing.T) {
	gen := New("You are a data analyst.")
	if got := gen.Generate(); got != "You are a data analyst." {
		t.Errorf("unexpected prompt: %s", got)
	}
}

func TestGenerateWithContextProviders(t *testing.T) {
	gen := New("You are a data analyst.", WithContextProviders(
		staticProvider{title: "Dataset", info: "1000 rows of car sales"},
		staticProvider{title: "Empty"},
	))
	got := gen.Generate()
	for _, expect := range []string{
		"# EXTRA INFORMATION AND CONTEXT",
		"## Dataset",
		"1000 rows of car sales",
	} {
		if !strings.Contains(got, expect) {
			t.Errorf("expect %q in prompt, got:\n%s", expect, got)
		}
	}
	if strings.Contains(got, "## Empty") {
		t.Error("providers without info should be skipped")
	}
}

func ExampleGenerator_Generate() {
	gen := New("You are a helpful assistant.", WithContextProviders(staticProvider{title: "Notes", info: "- be brief"}))
	fmt.Println(gen.Generate())
	// Output:
	// You are a helpful assistant.
	//
	// # EXTRA INFORMATION AND CONTEXT
	// ## Notes
	// - be brief
}
