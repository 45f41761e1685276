package mail

import (
	"bytes"
	"context"
	"embed"
	"strconv"
	"strings"
	"text/template"
	"time"

	"finsync/config"
	"finsync/internal/domain/service"

	"github.com/pkg/errors"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// template buckets
	_ "gocloud.dev/blob/gcsblob"  // gs:// template buckets
	_ "gocloud.dev/blob/memblob"  // mem:// buckets in tests
)

const defaultTemplateKey = "verification.tmpl"

//go:embed templates/verification.tmpl
var embeddedTemplates embed.FS

type verificationData struct {
	Name      string
	Email     string
	VerifyURL string
	ExpiresIn string
}

type templates struct {
	verification *template.Template
	tokenTTL     time.Duration
}

// NewTemplates loads the verification template from mail.templateBucketUrl,
// falling back to the embedded default when no bucket is configured.
func NewTemplates(ctx context.Context, cfg *config.Config) (service.MailTemplates, error) {
	source, err := loadTemplateSource(ctx, cfg.Mail)
	if err != nil {
		return nil, err
	}

	var ttl time.Duration
	if cfg.Verification != nil {
		ttl = cfg.Verification.TokenTTL
	}

	return parseTemplates(source, ttl)
}

func parseTemplates(source []byte, tokenTTL time.Duration) (*templates, error) {
	tmpl, err := template.New("verification").Option("missingkey=error").Parse(string(source))
	if err != nil {
		return nil, errors.Wrap(err, "parse verification template")
	}
	for _, name := range []string{"subject", "body"} {
		if tmpl.Lookup(name) == nil {
			return nil, errors.Errorf("verification template does not define %q", name)
		}
	}

	return &templates{verification: tmpl, tokenTTL: tokenTTL}, nil
}

func loadTemplateSource(ctx context.Context, cfg *config.MailConfig) ([]byte, error) {
	if cfg == nil || cfg.TemplateBucketURL == "" {
		source, err := embeddedTemplates.ReadFile("templates/" + defaultTemplateKey)

		return source, errors.WithStack(err)
	}

	bucket, err := blob.OpenBucket(ctx, cfg.TemplateBucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open template bucket %s", cfg.TemplateBucketURL)
	}
	defer bucket.Close()

	key := cfg.TemplateKey
	if key == "" {
		key = defaultTemplateKey
	}

	source, err := bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, errors.Wrapf(err, "read template %s", key)
	}

	return source, nil
}

func (t *templates) VerificationMail(event *service.VerificationEvent) (*service.MailMessage, error) {
	data := verificationData{
		Name:      event.Name,
		Email:     event.Email,
		VerifyURL: event.VerifyURL,
		ExpiresIn: humanDuration(t.tokenTTL),
	}

	subject, err := t.render("subject", data)
	if err != nil {
		return nil, err
	}
	body, err := t.render("body", data)
	if err != nil {
		return nil, err
	}

	return &service.MailMessage{
		To:      event.Email,
		Subject: strings.TrimSpace(subject),
		Body:    strings.TrimLeft(body, "\n"),
	}, nil
}

func (t *templates) render(name string, data verificationData) (string, error) {
	var buf bytes.Buffer
	if err := t.verification.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "render %s", name)
	}

	return buf.String(), nil
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a limited time"
	case d%time.Hour == 0:
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}

		return strconv.Itoa(hours) + " hours"
	default:
		return d.String()
	}
}
