package prd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Beast Tins PRD

Some introductory prose.

## Authentication

- [ ] Sign in with magic link
- [x] Session refresh on focus

Notes between sections survive rendering.

## Checkout Payments

- [ ] Show e-transfer instructions after checkout
  - [ ] Indented sub-task
- [ ] Record payment reference

### Not a section

- [ ] Task under a sub-heading belongs to the parent section
`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	require.Len(t, doc.Sections, 2)

	auth := doc.Sections[0]
	assert.Equal(t, "Authentication", auth.Title)
	require.Len(t, auth.Tasks, 2)
	assert.Equal(t, "Sign in with magic link", auth.Tasks[0].Title)
	assert.False(t, auth.Tasks[0].Done)
	assert.True(t, auth.Tasks[1].Done)

	checkout := doc.Sections[1]
	assert.Equal(t, "Checkout Payments", checkout.Title)
	// Indented sub-task and the task under the ### heading both count.
	require.Len(t, checkout.Tasks, 4)
	assert.Equal(t, "Indented sub-task", checkout.Tasks[1].Title)
	assert.Equal(t, "Task under a sub-heading belongs to the parent section", checkout.Tasks[3].Title)
}

func TestParse_DuplicateSection(t *testing.T) {
	input := "## Authentication\n- [ ] a\n## Authentication\n- [ ] b\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate section")
}

func TestParse_TaskOutsideSection(t *testing.T) {
	input := "- [ ] orphan task\n## Authentication\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside any section")
}

func TestParse_SubHeadingsAreNotSections(t *testing.T) {
	input := "## Real\n### Nested\n- [ ] task\n"

	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Real", doc.Sections[0].Title)
	assert.Len(t, doc.Sections[0].Tasks, 1)
}

func TestDocument_Find(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	task := doc.Find("Record payment reference")
	require.NotNil(t, task)
	assert.False(t, task.Done)

	assert.Nil(t, doc.Find("does not exist"))
}

func TestDocument_MarkDone(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.True(t, doc.MarkDone("Record payment reference"))
	assert.True(t, doc.Find("Record payment reference").Done)

	// Idempotent: a second call reports no change.
	assert.False(t, doc.MarkDone("Record payment reference"))

	// Already-done and absent tasks report no change.
	assert.False(t, doc.MarkDone("Session refresh on focus"))
	assert.False(t, doc.MarkDone("does not exist"))
}

func TestDocument_RenderPreservesEverythingButCheckboxes(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	// Untouched documents render back byte for byte (minus the trailing
	// newline the line split consumed).
	assert.Equal(t, strings.TrimSuffix(sampleDoc, "\n"), doc.Render())

	doc.MarkDone("Sign in with magic link")
	rendered := doc.Render()

	assert.Contains(t, rendered, "- [x] Sign in with magic link")
	assert.Contains(t, rendered, "Some introductory prose.")
	assert.Contains(t, rendered, "Notes between sections survive rendering.")
	assert.Contains(t, rendered, "  - [ ] Indented sub-task", "indentation is preserved")
}

func TestCategory(t *testing.T) {
	cases := []struct {
		title    string
		expected string
	}{
		{"Authentication", "auth"},
		{"Product Inventory Flow", "product"},
		{"Checkout Payments", "checkout"},
		{"\U0001F6D2 Checkout & Payments", "checkout"},
		{"Delivery System", "delivery"},
		{"CMS Features", "cms"},
		{"React Query Strategy", "api"},
		{"Webhooks Automation", "webhook"},
		{"Database Migrations", "database"},
		{"Totally Novel Topic", "totally"},
		{"", "general"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Category(tc.title), "title %q", tc.title)
	}
}
