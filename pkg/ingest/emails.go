package ingest

import (
	"strconv"
	"strings"

	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest/csvline"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
)

// Emails parses an email-connector CSV export. Connector exports name their
// columns loosely (MessageId vs EmailId, Body vs Summary), so lookup is
// fuzzy: the first header containing one of the alias keys wins. Rows
// without at least a subject or a client name are dropped.
func (p *Parser) Emails(csvText string) []placement.Email {
	lines := strings.Split(strings.TrimSpace(csvText), "\n")
	if len(lines) < 2 {
		return []placement.Email{}
	}

	mapper := csvline.NewFieldMapper(splitHeader(lines[0]))
	emails := make([]placement.Email, 0, len(lines)-1)

	for i := 1; i < len(lines); i++ {
		values := csvline.SplitFields(lines[i])
		if len(values) < 3 {
			p.metrics.skipped("email", SkipReasonTooFewColumns)
			continue
		}
		get := func(keys ...string) string { return mapper.ValueFuzzy(keys, values) }

		email := placement.Email{
			EmailID:     get("emailid", "id", "messageid"),
			Subject:     get("subject", "title"),
			ClientName:  get("clientname", "client", "from", "sender"),
			ReceivedAt:  get("receivedat", "received", "date", "datetime"),
			PolicyID:    get("policyid", "policy", "placementid"),
			Summary:     get("summary", "body", "preview", "snippet"),
			Sentiment:   parseSentiment(get("sentiment", "tone")),
			ThreadCount: parseThreadCount(get("threadcount", "threads", "count")),
			SourceLink:  get("sourcelink", "link", "url"),
			SenderEmail: get("senderemail", "fromemail", "email"),
		}
		if email.EmailID == "" {
			email.EmailID = "EM-" + strconv.Itoa(i)
		}
		if email.SourceLink == "" {
			email.SourceLink = "https://mail.example.com/" + strconv.Itoa(i)
		}

		if email.Subject == "" && email.ClientName == "" {
			p.metrics.skipped("email", SkipReasonNoIdentity)
			continue
		}
		emails = append(emails, email)
		p.metrics.ingested("email")
	}

	return emails
}

// parseSentiment maps a raw label to the closed sentiment set, defaulting to
// neutral for anything unrecognized.
func parseSentiment(s string) placement.Sentiment {
	switch placement.Sentiment(strings.ToLower(strings.TrimSpace(s))) {
	case placement.SentimentPositive:
		return placement.SentimentPositive
	case placement.SentimentNegative:
		return placement.SentimentNegative
	default:
		return placement.SentimentNeutral
	}
}

// parseThreadCount parses a thread count, defaulting to 1.
func parseThreadCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}
