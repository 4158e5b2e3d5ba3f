package diagfmt_test

import (
	"strings"
	"testing"

	"logtag/internal/diag"
	"logtag/internal/diagfmt"
)

func sampleBag() *diag.Bag {
	bag := diag.NewBag(8)
	bag.Add(diag.NewWarning(diag.TagTooLong, "cmgapps.test.LongName",
		"name exceeds 23 characters").WithNote("set an explicit tag to override"))
	bag.Add(diag.NewError(diag.UnitPrivate, "cmgapps.test.Hidden",
		"must not be private"))
	return bag
}

func TestPretty_PlainOutput(t *testing.T) {
	var b strings.Builder
	bag := sampleBag()
	bag.Sort()
	diagfmt.Pretty(&b, bag, diagfmt.PrettyOpts{ShowNotes: true})

	out := b.String()
	for _, want := range []string{
		"cmgapps.test.Hidden: ERROR LT2001: must not be private",
		"cmgapps.test.LongName: WARNING LT1001: name exceeds 23 characters",
		"    note: set an explicit tag to override",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPretty_MaxTruncatesOutput(t *testing.T) {
	var b strings.Builder
	diagfmt.Pretty(&b, sampleBag(), diagfmt.PrettyOpts{Max: 1})

	out := b.String()
	if !strings.Contains(out, "... and 1 more") {
		t.Errorf("expected truncation marker:\n%s", out)
	}
}

func TestJSON_Roundtrip(t *testing.T) {
	var b strings.Builder
	if err := diagfmt.JSON(&b, sampleBag(), diagfmt.JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	out := b.String()
	for _, want := range []string{`"LT1001"`, `"WARNING"`, `"cmgapps.test.Hidden"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json missing %s:\n%s", want, out)
		}
	}
}
