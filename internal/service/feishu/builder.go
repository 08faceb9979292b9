package feishu

import (
	"fmt"
	"strings"

	"MomentumReport/internal/domain/models"
)

// MaxTextRunes bounds the body of a plain-text message.
const MaxTextRunes = 2000

// PostLocale is the locale key of post messages.
const PostLocale = "zh_cn"

const footerTimeLayout = "2006-01-02 15:04:05"

// HeaderTemplate maps a document to its header colour.
func HeaderTemplate(doc *models.ReportDocument) string {
	if doc.MarketClosed {
		return TemplateGrey
	}
	switch doc.Stance.Category() {
	case "aggressive":
		return TemplateBlue
	case "cash":
		return TemplateRed
	default:
		return TemplateYellow
	}
}

// Title is the card header and text message title for doc.
func Title(doc *models.ReportDocument) string {
	return fmt.Sprintf("📈 %s Daily Momentum Report | %s", doc.Trader, doc.Date)
}

// BuildPayload maps a report document onto an interactive card.
func BuildPayload(doc *models.ReportDocument) *NotificationPayload {
	var elements []Element
	if doc.MarketClosed {
		elements = []Element{
			Div{Markdown: "**🔒 Market closed**\nNo trading session today. Next report on the next trading day."},
		}
	} else {
		elements = []Element{
			Div{Markdown: fmt.Sprintf("**%s Stance: %s**\n**Reason:** %s", stanceMarker(doc.Stance), doc.Stance, doc.Reason)},
			Div{Markdown: formatSignal(doc.Signal)},
			Div{Markdown: formatWatchlist(doc.Watchlist)},
			Div{Markdown: "**⚠️ Risk notes**\n" + doc.RiskNotes},
		}
		if len(doc.News) > 0 {
			elements = append(elements, Div{Markdown: "**📰 Market news**\n" + strings.Join(doc.News, "\n")})
		}
	}
	elements = append(elements,
		Hr{},
		Note{Text: fmt.Sprintf("📅 Generated: %s | Trader: %s", doc.GeneratedAt.Format(footerTimeLayout), doc.Trader)},
	)

	return &NotificationPayload{
		MsgType: MsgTypeInteractive,
		Card: &Card{
			Config: CardConfig{WideScreenMode: true},
			Header: CardHeader{
				Template: HeaderTemplate(doc),
				Title:    PlainText{Content: Title(doc)},
			},
			Elements: elements,
		},
	}
}

// BuildTextPayload builds a plain-text message, truncating text to MaxTextRunes.
func BuildTextPayload(title, text string) *NotificationPayload {
	if r := []rune(text); len(r) > MaxTextRunes {
		text = string(r[:MaxTextRunes])
	}
	content := &TextContent{Text: title + "\n\n" + text}
	return &NotificationPayload{MsgType: content.msgType(), Content: content}
}

// BuildPostPayload builds a rich-text message from rendered markdown. Each line
// becomes a paragraph; heading lines are bold and preceded by a rule.
func BuildPostPayload(title, rendered string) *NotificationPayload {
	var paragraphs [][]PostElement
	for _, line := range strings.Split(strings.TrimRight(rendered, "\n"), "\n") {
		if heading, ok := strings.CutPrefix(line, "#"); ok {
			paragraphs = append(paragraphs,
				[]PostElement{{Tag: "hr"}},
				[]PostElement{{Tag: "text", Text: strings.TrimSpace(strings.TrimLeft(heading, "#")), Style: []string{"bold"}}},
			)
			continue
		}
		paragraphs = append(paragraphs, []PostElement{{Tag: "text", Text: line}})
	}

	content := &PostContent{Post: map[string]PostBody{
		PostLocale: {Title: title, Content: paragraphs},
	}}
	return &NotificationPayload{MsgType: content.msgType(), Content: content}
}

func stanceMarker(s models.Stance) string {
	switch s {
	case models.StanceAggressiveBuy:
		return "🟢"
	case models.StanceHoldCash:
		return "🔴"
	default:
		return "🟡"
	}
}

func formatSignal(s models.MarketSignal) string {
	return fmt.Sprintf("**📊 VIX:** %.1f (%+.1f%%)\n**📈 SPY 5d:** %+.1f%%\n**Source:** %s",
		s.VolatilityIndex, s.VolatilityChangePct, s.IndexReturnPct, s.Source)
}

func formatWatchlist(entries []models.WatchlistEntry) string {
	if len(entries) == 0 {
		return "**📋 Watchlist:** no candidates passed the screen today"
	}

	lines := make([]string, 0, 1+2*len(entries))
	lines = append(lines, "**📋 5% Watchlist:**")
	for i, e := range entries {
		lines = append(lines,
			fmt.Sprintf("%d. **%s** - %s", i+1, e.Symbol, e.Rationale),
			fmt.Sprintf("   Entry: %s | Stop: %s | Success: %d%%", e.EntryCondition, e.StopLoss, e.SuccessProbability),
		)
	}
	return strings.Join(lines, "\n")
}
