package dataframe

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bububa/dataframe-agents/components/systemprompt"
)

// Provider exposes a Frame as a system prompt context provider so every
// model call sees the dataset schema and a small sample of rows.
type Provider struct {
	title      string
	frame      *Frame
	sampleRows int
}

var _ systemprompt.ContextProvider = (*Provider)(nil)

// NewProvider returns a context provider for the frame showing up to
// sampleRows leading records.
func NewProvider(title string, frame *Frame, sampleRows int) *Provider {
	if sampleRows <= 0 {
		sampleRows = 5
	}
	return &Provider{
		title:      title,
		frame:      frame,
		sampleRows: sampleRows,
	}
}

func (p Provider) Title() string {
	return p.title
}

func (p Provider) Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "The dataset is an in-memory table with %d rows.\n\n", p.frame.NumRows())
	if bs, err := yaml.Marshal(p.frame.Columns()); err == nil {
		sb.WriteString("Columns:\n```yaml\n")
		sb.Write(bs)
		sb.WriteString("```\n\n")
	}
	fmt.Fprintf(&sb, "First %d rows:\n", p.sampleRows)
	sb.WriteString(p.frame.Markdown(p.sampleRows))
	return sb.String()
}
