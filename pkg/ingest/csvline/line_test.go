package csvline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitFields_Basic(t *testing.T) {
	fields := SplitFields("a,b,c")
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestSplitFields_QuotedComma(t *testing.T) {
	fields := SplitFields(`Acme Corp,"Liability, General",Quote`)
	assert.Equal(t, []string{"Acme Corp", "Liability, General", "Quote"}, fields)
}

func TestSplitFields_QuotesConsumed(t *testing.T) {
	// Quote chars toggle quoting mode and never appear in the output.
	fields := SplitFields(`"Acme",plain`)
	assert.Equal(t, []string{"Acme", "plain"}, fields)
}

func TestSplitFields_TrimsWhitespace(t *testing.T) {
	fields := SplitFields("  a , b  ,c ")
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestSplitFields_EmptyFields(t *testing.T) {
	fields := SplitFields(",,")
	assert.Equal(t, []string{"", "", ""}, fields)
}

func TestSplitFields_UnterminatedQuote(t *testing.T) {
	// Malformed input still yields some sequence of fields.
	fields := SplitFields(`a,"b,c`)
	assert.Equal(t, []string{"a", "b,c"}, fields)
}

func TestSplitFields_RoundTripPlainLine(t *testing.T) {
	// For lines with no quotes or embedded commas, the splitter matches a
	// plain split-and-trim.
	line := "Global Technologies,SCR-123, Quote ,30/09/26"
	want := strings.Split(line, ",")
	for i := range want {
		want[i] = strings.TrimSpace(want[i])
	}
	assert.Equal(t, want, SplitFields(line))
}

func TestFieldMapper_CaseAndSeparatorInvariance(t *testing.T) {
	row := []string{"PLC-1"}

	for _, header := range []string{"placement id", "PLACEMENT_ID", "PlacementId"} {
		m := NewFieldMapper([]string{header})
		assert.Equal(t, "PLC-1", m.Value("PlacementId", row), "header %q", header)
	}
}

func TestFieldMapper_FirstMatchWins(t *testing.T) {
	m := NewFieldMapper([]string{"Client", "client"})
	assert.Equal(t, "first", m.Value("Client", []string{"first", "second"}))
}

func TestFieldMapper_MissingHeader(t *testing.T) {
	m := NewFieldMapper([]string{"Client"})
	assert.Equal(t, "", m.Value("PlacementId", []string{"Acme"}))
}

func TestFieldMapper_ShortRow(t *testing.T) {
	m := NewFieldMapper([]string{"Client", "PlacementId"})
	assert.Equal(t, "", m.Value("PlacementId", []string{"Acme"}))
}

func TestFieldMapper_ValueFuzzy(t *testing.T) {
	m := NewFieldMapper([]string{"Message ID", "Subject Line", "Sender"})
	row := []string{"EM-1", "Renewal due", "bob@example.com"}

	assert.Equal(t, "EM-1", m.ValueFuzzy([]string{"emailid", "id", "messageid"}, row))
	assert.Equal(t, "Renewal due", m.ValueFuzzy([]string{"subject", "title"}, row))
	assert.Equal(t, "", m.ValueFuzzy([]string{"threadcount"}, row))
}

func TestFieldMapper_ValueFuzzySkipsEmpty(t *testing.T) {
	m := NewFieldMapper([]string{"Id", "EventId"})
	row := []string{"", "EVT-9"}
	assert.Equal(t, "EVT-9", m.ValueFuzzy([]string{"id"}, row))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "placementid", Normalize("Placement_ Id"))
}
