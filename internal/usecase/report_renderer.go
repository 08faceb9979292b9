package usecase

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"MomentumReport/internal/domain/models"
)

const reportTemplate = `# 📈 Daily Momentum Report
**Date:** {{.Date}}
**Trader:** {{.Trader}}

---
{{if .MarketClosed}}
## ⚠️ Market Closed

US markets are closed today. The next report follows on the next trading day.

**Weekend plan:**
{{.RiskNotes}}
{{else}}
## 1️⃣ Market Stance

**{{.Stance}}**

**Reason:** {{.Reason}}

**Sentiment:**
- VIX: {{printf "%.1f" .Signal.VolatilityIndex}} ({{signed .Signal.VolatilityChangePct}} over the window)
- SPY: {{signed .Signal.IndexReturnPct}} over the window
- Data source: {{.Signal.Source}}

---

## 2️⃣ 5% Watchlist
{{if .Watchlist}}
| Symbol | Rationale | Entry | Stop | Success |
|--------|-----------|-------|------|---------|
{{range .Watchlist}}| {{.Symbol}} | {{cell .Rationale}} | {{cell .EntryCondition}} | {{cell .StopLoss}} | {{.SuccessProbability}}% |
{{end}}{{else}}
No candidates passed the momentum screen today.
{{end}}
---

## 3️⃣ Risk Notes

{{.RiskNotes}}

**Position sizing:**
` + "```" + `
total exposure = stance factor x conviction factor
single name <= 20% of capital
daily loss <= 2% of capital
` + "```" + `

---

## 📋 Trading Checklist

**Before the open:**
- [ ] Check pre-market futures (SPY/QQQ)
- [ ] Check the VIX move
- [ ] Confirm economic data release times
- [ ] Review pre-market moves of open positions
- [ ] Set today's stop levels

**During the session:**
- [ ] 10:00 AM - confirm direction after the open
- [ ] 12:00 PM - midday volume
- [ ] 3:30 PM - adjust positions into the close

---

## 📰 Market News
{{range .News}}
- {{.}}{{else}}
- No fresh headlines, check your usual news sources{{end}}

---

## 💬 Today's Advice

> "The market is always right; your job is to spot the trend and ride it. {{advice .Stance}} Protecting capital always comes first."
{{end}}
---

*Generated: {{.GeneratedAt.Format "2006-01-02 15:04:05"}}*
*Data: Yahoo Finance / Web Search*
*Disclaimer: for reference only, not investment advice. Trading involves risk.*
`

var templateFuncs = template.FuncMap{
	"signed": func(v float64) string { return fmt.Sprintf("%+.1f%%", v) },
	"cell":   func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"advice": stanceAdvice,
}

func stanceAdvice(s models.Stance) string {
	switch s {
	case models.StanceAggressiveBuy:
		return "With an aggressive stance today, actively look for high-conviction setups."
	case models.StanceHoldCash:
		return "With a cash stance today, stay patient and wait for the right pitch."
	default:
		return "With a conservative stance today, be selective and keep size under control."
	}
}

// ReportRenderer turns documents into markdown and HTML.
type ReportRenderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

func NewReportRenderer() *ReportRenderer {
	return &ReportRenderer{
		tmpl: template.Must(template.New("report").Funcs(templateFuncs).Parse(reportTemplate)),
		md: goldmark.New(
			goldmark.WithExtensions(extension.Table, extension.TaskList, extension.Strikethrough, extension.Linkify),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Markdown renders doc as the report file body.
func (r *ReportRenderer) Markdown(doc *models.ReportDocument) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// HTML renders doc as an HTML fragment.
func (r *ReportRenderer) HTML(doc *models.ReportDocument) (string, error) {
	src, err := r.Markdown(doc)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}
