package document

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodPage = `<!doctype html>
<html lang="en">
<head><title> Colour  contrast guide </title></head>
<body>
<header><nav aria-label="Primary"><a href="/">Home</a></nav></header>
<main>
  <h1>Colour contrast</h1>
  <h2>Why it matters</h2>
  <img src="chart.png" alt="Ratio chart">
  <img src="divider.png" alt="">
  <h3>Normal text</h3>
  <h2>Tools</h2>
  <a href="/checker"><img src="icon.svg" alt="Contrast checker"></a>
  <form aria-label="Feedback">
    <label for="email">Email</label><input id="email" type="email" name="email">
    <label>Message <textarea name="message"></textarea></label>
    <input type="hidden" name="token">
    <button type="submit">Send</button>
  </form>
</main>
<footer>Accessible by default</footer>
</body>
</html>`

func codes(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Code)
	}
	return out
}

func TestAnalyze_GoodPage(t *testing.T) {
	o, err := Analyze(strings.NewReader(goodPage))
	require.NoError(t, err)

	assert.Equal(t, "Colour contrast guide", o.Title)
	assert.Equal(t, "en", o.Lang)
	assert.Empty(t, o.Issues)

	wantHeadings := []Heading{
		{Level: 1, Text: "Colour contrast"},
		{Level: 2, Text: "Why it matters"},
		{Level: 3, Text: "Normal text"},
		{Level: 2, Text: "Tools"},
	}
	if diff := cmp.Diff(wantHeadings, o.Headings); diff != "" {
		t.Errorf("headings mismatch (-want +got):\n%s", diff)
	}

	wantLandmarks := []Landmark{
		{Role: "banner"},
		{Role: "navigation", Label: "Primary"},
		{Role: "main"},
		{Role: "form", Label: "Feedback"},
		{Role: "contentinfo"},
	}
	if diff := cmp.Diff(wantLandmarks, o.Landmarks); diff != "" {
		t.Errorf("landmarks mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, o.Images, 3)
	assert.False(t, o.Images[0].Decorative)
	assert.True(t, o.Images[1].Decorative)

	require.Len(t, o.Links, 2)
	assert.Equal(t, "Contrast checker", o.Links[1].Text)

	require.Len(t, o.Controls, 2)
	for _, c := range o.Controls {
		assert.True(t, c.Labelled, c.Name)
	}
}

func TestAnalyze_Problems(t *testing.T) {
	page := `<html><body>
<h2>Intro</h2>
<h4>Details</h4>
<h1></h1>
<h1>Second</h1>
<img src="photo.jpg">
<a href="/more"></a>
<a href="/icon"><span aria-hidden="true">★</span></a>
<input type="text" name="q">
</body></html>`

	o, err := Analyze(strings.NewReader(page))
	require.NoError(t, err)

	want := []string{
		IssueMissingTitle,
		IssueMissingLang,
		IssueHeadingSkip,
		IssueEmptyHeading,
		IssueMultipleH1,
		IssueMissingAlt,
		IssueEmptyLink,
		IssueEmptyLink,
		IssueUnlabelled,
		IssueMissingMain,
	}
	if diff := cmp.Diff(want, codes(o.Issues)); diff != "" {
		t.Errorf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_NoH1AndRoleLandmarks(t *testing.T) {
	page := `<html lang="fr"><head><title>t</title></head><body>
<div role="main"><h2>Section</h2></div>
<div role="presentation"></div>
<section>unnamed section</section>
</body></html>`

	o, err := Analyze(strings.NewReader(page))
	require.NoError(t, err)
	assert.Equal(t, []Landmark{{Role: "main"}}, o.Landmarks)
	assert.Equal(t, []string{IssueNoH1}, codes(o.Issues))
}

func TestAnalyze_Empty(t *testing.T) {
	_, err := Analyze(strings.NewReader("   "))
	assert.ErrorIs(t, err, ErrEmptyDocument)
}
