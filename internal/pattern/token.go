package pattern

import "strings"

// field identifies which timestamp component a capture group feeds.
type field int

const (
	fieldYear field = iota
	fieldMonth
	fieldMonthAbbr
	fieldDay
	fieldHour
	fieldMinutes
	fieldSeconds
	fieldName
	fieldTZ
)

// placeholders maps every recognised template token to its field and the
// expression its capture group uses.
var placeholders = map[string]struct {
	field field
	expr  string
}{
	"year":       {fieldYear, `\d{4}`},
	"month":      {fieldMonth, `\d{1,2}`},
	"month_abbr": {fieldMonthAbbr, `[a-zA-Z]{3}`},
	"month_abr":  {fieldMonthAbbr, `[a-zA-Z]{3}`}, // first release shipped with this spelling
	"day":        {fieldDay, `\d{1,2}`},
	"hour":       {fieldHour, `\d{1,2}`},
	"minutes":    {fieldMinutes, `\d{1,2}`},
	"seconds":    {fieldSeconds, `\d{1,2}`},
	"name":       {fieldName, `.+`},
	"TZ":         {fieldTZ, `Z|[+-]\d{2}:\d{2}`},
}

// token is either a literal run (placeholder == false) or a placeholder.
type token struct {
	placeholder bool
	text        string
	field       field
	expr        string
}

// tokenize scans template once, left to right. A `{...}` sequence naming a
// known placeholder becomes a placeholder token; anything else, including
// unknown braces, is literal text.
func tokenize(template string) []token {
	var (
		tokens  []token
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, token{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); {
		if template[i] == '{' {
			if end := strings.IndexByte(template[i+1:], '}'); end >= 0 {
				name := template[i+1 : i+1+end]
				if p, ok := placeholders[name]; ok {
					flush()
					tokens = append(tokens, token{placeholder: true, text: name, field: p.field, expr: p.expr})
					i += end + 2
					continue
				}
			}
		}
		literal.WriteByte(template[i])
		i++
	}
	flush()

	return tokens
}
