package telegram

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sandevgo/ragdesk/pkg/conv"
	"github.com/sandevgo/ragdesk/pkg/log"
	tele "gopkg.in/telebot.v3"
)

// maxMessageRunes stays under the 4096 character Bot API limit.
const maxMessageRunes = 4000

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown renders md as Telegram HTML and sends it in as many messages as
// needed. A part Telegram refuses to parse, usually a tag cut in half by the
// split, is resent as plain text.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, silent bool) error {
	logger := log.FromCtx(ctx)
	html := conv.TelegramHTML([]byte(md))

	for i, part := range splitMessage(html, maxMessageRunes) {
		opts := []interface{}{tele.ModeHTML}
		if silent && i == 0 {
			opts = append(opts, tele.Silent)
		}

		_, err := s.bot.Send(to, part, opts...)
		if err == nil {
			continue
		}
		logger.Warn().Err(err).Int("part", i).Msg("html rejected, resending as plain text")

		plain, convErr := conv.HTMLToText([]byte(part))
		if convErr != nil || plain == "" {
			return err
		}
		if _, err := s.bot.Send(to, plain, opts[1:]...); err != nil {
			logger.Error().Err(err).Int("part", i).Int("runes", utf8.RuneCountInString(plain)).Msg("failed to send telegram message")
			return err
		}
	}
	return nil
}

// splitMessage cuts text into parts of at most limit runes. It prefers a line
// break, then a space, in the last two thirds of each part and never cuts
// inside a tag.
func splitMessage(text string, limit int) []string {
	var parts []string
	for {
		text = strings.TrimSpace(text)
		if text == "" {
			return parts
		}
		if utf8.RuneCountInString(text) <= limit {
			return append(parts, text)
		}

		window := text[:runeOffset(text, limit)]
		cut := len(window)
		if i := strings.LastIndexByte(window, '\n'); i > len(window)/3 {
			cut = i
		} else if i := strings.LastIndexByte(window, ' '); i > len(window)/3 {
			cut = i
		}
		if open := strings.LastIndexByte(text[:cut], '<'); open > 0 && open > strings.LastIndexByte(text[:cut], '>') {
			cut = open
		}

		parts = append(parts, text[:cut])
		text = text[cut:]
	}
}

// runeOffset returns the byte offset of the n-th rune in s.
func runeOffset(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
