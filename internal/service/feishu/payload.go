package feishu

import "encoding/json"

// Message types accepted by the custom-bot webhook.
const (
	MsgTypeInteractive = "interactive"
	MsgTypeText        = "text"
	MsgTypePost        = "post"
)

// Header colour templates.
const (
	TemplateBlue   = "blue"
	TemplateYellow = "yellow"
	TemplateRed    = "red"
	TemplateGrey   = "grey"
)

// NotificationPayload is the webhook request body. Exactly one of Card or Content is set.
type NotificationPayload struct {
	MsgType string         `json:"msg_type"`
	Card    *Card          `json:"card,omitempty"`
	Content MessageContent `json:"content,omitempty"`
}

// MessageContent is the content object of a text or post message.
type MessageContent interface {
	msgType() string
}

type TextContent struct {
	Text string `json:"text"`
}

func (*TextContent) msgType() string { return MsgTypeText }

// PostContent is a rich-text message, keyed by locale.
type PostContent struct {
	Post map[string]PostBody `json:"post"`
}

func (*PostContent) msgType() string { return MsgTypePost }

type PostBody struct {
	Title   string          `json:"title"`
	Content [][]PostElement `json:"content"`
}

// PostElement is one inline run of a post paragraph.
type PostElement struct {
	Tag   string   `json:"tag"`
	Text  string   `json:"text,omitempty"`
	Style []string `json:"style,omitempty"`
}

// Card is an interactive message card.
type Card struct {
	Config   CardConfig `json:"config"`
	Header   CardHeader `json:"header"`
	Elements []Element  `json:"elements"`
}

type CardConfig struct {
	WideScreenMode bool `json:"wide_screen_mode"`
}

type CardHeader struct {
	Template string    `json:"template"`
	Title    PlainText `json:"title"`
}

// PlainText renders as {"tag":"plain_text","content":...}.
type PlainText struct {
	Content string
}

func (p PlainText) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedText{Tag: "plain_text", Content: p.Content})
}

type taggedText struct {
	Tag     string `json:"tag"`
	Content string `json:"content"`
}

// Element is one body block of a card. The set of variants is closed: Div, Hr and Note.
type Element interface {
	json.Marshaler
	Tag() string
}

// Div is a markdown text block.
type Div struct {
	Markdown string
}

func (Div) Tag() string { return "div" }

func (d Div) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag  string     `json:"tag"`
		Text taggedText `json:"text"`
	}{
		Tag:  d.Tag(),
		Text: taggedText{Tag: "lark_md", Content: d.Markdown},
	})
}

// Hr is a horizontal rule.
type Hr struct{}

func (Hr) Tag() string { return "hr" }

func (h Hr) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag string `json:"tag"`
	}{Tag: h.Tag()})
}

// Note is a small grey footer line.
type Note struct {
	Text string
}

func (Note) Tag() string { return "note" }

func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tag      string      `json:"tag"`
		Elements []PlainText `json:"elements"`
	}{
		Tag:      n.Tag(),
		Elements: []PlainText{{Content: n.Text}},
	})
}
