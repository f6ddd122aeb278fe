package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"
)

// EmailParser extracts headers and the text body from RFC 822 messages.
type EmailParser struct{}

func (p *EmailParser) SupportedFormats() []string { return []string{"email"} }

func (p *EmailParser) Parse(ctx context.Context, data []byte) (*Result, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing email: %w", err)
	}

	var b strings.Builder
	for _, h := range []string{"Subject", "From", "To", "Date"} {
		if v := msg.Header.Get(h); v != "" {
			b.WriteString(strings.ToUpper(h))
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	body, err := extractEmailBody(msg)
	if err != nil {
		return nil, err
	}
	b.WriteString(body)

	return &Result{
		Text:   strings.TrimSpace(b.String()),
		Method: "email",
	}, nil
}

// extractEmailBody returns the first text/plain part, or the whole body for
// non-multipart messages. HTML-only messages fall back to the HTML parser.
func extractEmailBody(msg *mail.Message) (string, error) {
	contentType := msg.Header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return "", fmt.Errorf("multipart email without boundary")
		}
		mr := multipart.NewReader(msg.Body, boundary)
		var htmlPart string
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				return "", fmt.Errorf("reading email part: %w", err)
			}
			partType, _, _ := mime.ParseMediaType(part.Header.Get("Content-Type"))
			content, err := decodePart(part, part.Header.Get("Content-Transfer-Encoding"))
			if err != nil {
				continue
			}
			switch partType {
			case "text/plain":
				return content, nil
			case "text/html":
				htmlPart = content
			}
		}
		if htmlPart != "" {
			res, err := (&HTMLParser{}).Parse(context.Background(), []byte(htmlPart))
			if err != nil {
				return "", err
			}
			return res.Text, nil
		}
		return "", nil
	}

	return decodePart(msg.Body, msg.Header.Get("Content-Transfer-Encoding"))
}

// decodePart reads a body applying its transfer encoding.
func decodePart(r io.Reader, encoding string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(encoding), "quoted-printable") {
		r = quotedprintable.NewReader(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
