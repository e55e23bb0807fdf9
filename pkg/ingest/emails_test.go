package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
)

func TestEmails_SampleExport(t *testing.T) {
	p := NewParser(logging.NewNopLogger())

	emails := p.Emails(SampleEmailCSV())
	require.Len(t, emails, 3)

	first := emails[0]
	assert.Equal(t, "EM-501", first.EmailID)
	assert.Equal(t, "Renewal - Need Updated Proposal", first.Subject)
	assert.Equal(t, "Alpha Manufacturing Ltd", first.ClientName)
	assert.Equal(t, placement.SentimentNegative, first.Sentiment)
	assert.Equal(t, 7, first.ThreadCount)
}

func TestEmails_FuzzyHeaderAliases(t *testing.T) {
	csvText := `MessageId,Title,Client,Tone,Threads
M-1,Renewal question,Acme Corp,POSITIVE,4`

	p := NewParser(logging.NewNopLogger())
	emails := p.Emails(csvText)
	require.Len(t, emails, 1)

	assert.Equal(t, "M-1", emails[0].EmailID)
	assert.Equal(t, "Renewal question", emails[0].Subject)
	assert.Equal(t, "Acme Corp", emails[0].ClientName)
	assert.Equal(t, placement.SentimentPositive, emails[0].Sentiment)
	assert.Equal(t, 4, emails[0].ThreadCount)
}

func TestEmails_DefaultsForMissingFields(t *testing.T) {
	csvText := `Subject,ClientName,Summary
Renewal chase,Acme Corp,short note`

	p := NewParser(logging.NewNopLogger())
	emails := p.Emails(csvText)
	require.Len(t, emails, 1)

	assert.Equal(t, "EM-1", emails[0].EmailID)
	assert.Equal(t, placement.SentimentNeutral, emails[0].Sentiment)
	assert.Equal(t, 1, emails[0].ThreadCount)
	assert.NotEmpty(t, emails[0].SourceLink)
}

func TestEmails_DropsRowsWithoutIdentity(t *testing.T) {
	csvText := `Subject,ClientName,Summary
,,orphaned summary`

	p := NewParser(logging.NewNopLogger())
	assert.Empty(t, p.Emails(csvText))
}

func TestEmails_DropsShortRows(t *testing.T) {
	csvText := `Subject,ClientName,Summary
one,two`

	p := NewParser(logging.NewNopLogger())
	assert.Empty(t, p.Emails(csvText))
}

func TestEmails_EmptyInput(t *testing.T) {
	p := NewParser(logging.NewNopLogger())
	assert.Empty(t, p.Emails(""))
}

func TestParseSentiment(t *testing.T) {
	assert.Equal(t, placement.SentimentPositive, parseSentiment(" Positive "))
	assert.Equal(t, placement.SentimentNegative, parseSentiment("negative"))
	assert.Equal(t, placement.SentimentNeutral, parseSentiment("neutral"))
	assert.Equal(t, placement.SentimentNeutral, parseSentiment("angry"))
	assert.Equal(t, placement.SentimentNeutral, parseSentiment(""))
}

func TestParseThreadCount(t *testing.T) {
	assert.Equal(t, 5, parseThreadCount("5"))
	assert.Equal(t, 1, parseThreadCount("0"))
	assert.Equal(t, 1, parseThreadCount("-3"))
	assert.Equal(t, 1, parseThreadCount("many"))
	assert.Equal(t, 1, parseThreadCount(""))
}
