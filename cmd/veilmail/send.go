package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	veilmail "github.com/Resonia-Health/veilmail-go"
)

type sendOptions struct {
	from           string
	to             []string
	cc             []string
	subject        string
	html           string
	htmlFile       string
	text           string
	template       string
	vars           []string
	tags           []string
	marketing      bool
	idempotencyKey string
}

func newSendCmd(a *app) *cobra.Command {
	o := &sendOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single email",
		Example: `  veilmail send --from hello@example.com --to user@example.com \
    --subject "Welcome" --html "<p>Hi</p>"
  veilmail send --from hello@example.com --to user@example.com \
    --template tpl_welcome --var firstName=Ada`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := o.params()
			if err != nil {
				return err
			}

			var email *veilmail.Email
			err = a.do(cmd.Context(), "send", func(ctx context.Context) error {
				var err error
				email, err = a.client.Emails.Send(ctx, params)
				return err
			})
			if err != nil {
				return err
			}

			if a.jsonOutput() {
				return writeJSON(cmd.OutOrStdout(), email)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", email.ID, email.Status)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.from, "from", "", "sender address")
	f.StringSliceVar(&o.to, "to", nil, "recipient address (repeatable)")
	f.StringSliceVar(&o.cc, "cc", nil, "cc address (repeatable)")
	f.StringVar(&o.subject, "subject", "", "subject line")
	f.StringVar(&o.html, "html", "", "HTML body")
	f.StringVar(&o.htmlFile, "html-file", "", "read the HTML body from a file")
	f.StringVar(&o.text, "text", "", "plain text body")
	f.StringVar(&o.template, "template", "", "template ID to render")
	f.StringArrayVar(&o.vars, "var", nil, "template variable as key=value (repeatable)")
	f.StringSliceVar(&o.tags, "tag", nil, "tag (repeatable)")
	f.BoolVar(&o.marketing, "marketing", false, "send as a marketing email")
	f.StringVar(&o.idempotencyKey, "idempotency-key", "", "key that makes retries of this send safe")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagsMutuallyExclusive("html", "html-file")

	return cmd
}

func (o *sendOptions) params() (*veilmail.SendEmailParams, error) {
	p := &veilmail.SendEmailParams{
		From:           o.from,
		To:             o.to,
		Cc:             o.cc,
		Subject:        o.subject,
		HTML:           o.html,
		Text:           o.text,
		TemplateID:     o.template,
		Tags:           o.tags,
		IdempotencyKey: o.idempotencyKey,
		Type:           veilmail.EmailTypeTransactional,
	}
	if o.marketing {
		p.Type = veilmail.EmailTypeMarketing
	}

	if o.htmlFile != "" {
		data, err := os.ReadFile(o.htmlFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read HTML file: %w", err)
		}
		p.HTML = string(data)
	}

	if len(o.vars) > 0 {
		if o.template == "" {
			return nil, fmt.Errorf("--var requires --template")
		}
		p.TemplateData = make(map[string]any, len(o.vars))
		for _, kv := range o.vars {
			k, v, ok := strings.Cut(kv, "=")
			if !ok || k == "" {
				return nil, fmt.Errorf("invalid --var %q: want key=value", kv)
			}
			p.TemplateData[k] = v
		}
	}

	if p.TemplateID == "" && p.HTML == "" && p.Text == "" {
		return nil, fmt.Errorf("one of --html, --html-file, --text or --template is required")
	}
	return p, nil
}
