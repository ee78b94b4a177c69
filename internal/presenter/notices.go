package presenter

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// DefaultNoticeTTL is how long a flashed notice stays visible.
const DefaultNoticeTTL = 6 * time.Second

const noticeKey = "notice"

type Tone string

const (
	ToneNone    Tone = ""
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// ToneOf classifies a message the way the status line colours it.
func ToneOf(text string) Tone {
	if text == "" {
		return ToneNone
	}
	lower := strings.ToLower(text)
	for _, marker := range []string{"fail", "declined", "error"} {
		if strings.Contains(lower, marker) {
			return ToneError
		}
	}
	return ToneSuccess
}

type Notice struct {
	Text     string    `json:"text"`
	Tone     Tone      `json:"tone"`
	PostedAt time.Time `json:"postedAt"`
}

// Notices is the single transient message line. Every post supersedes the previous
// message, including a pending expiry.
type Notices struct {
	items *cache.Cache
	ttl   time.Duration
}

func NewNotices(ttl time.Duration) *Notices {
	if ttl <= 0 {
		ttl = DefaultNoticeTTL
	}
	return &Notices{
		items: cache.New(cache.NoExpiration, time.Minute),
		ttl:   ttl,
	}
}

// Post shows text until the next message replaces it.
func (n *Notices) Post(text string) {
	n.set(text, cache.NoExpiration)
}

// Flash shows text and clears it after the configured TTL unless superseded.
func (n *Notices) Flash(text string) {
	n.set(text, n.ttl)
}

func (n *Notices) Clear() {
	n.items.Delete(noticeKey)
}

// Current returns the visible notice, if any.
func (n *Notices) Current() (Notice, bool) {
	v, ok := n.items.Get(noticeKey)
	if !ok {
		return Notice{}, false
	}
	notice, ok := v.(Notice)
	return notice, ok
}

func (n *Notices) set(text string, ttl time.Duration) {
	if text == "" {
		n.Clear()
		return
	}
	n.items.Set(noticeKey, Notice{Text: text, Tone: ToneOf(text), PostedAt: time.Now()}, ttl)
}
