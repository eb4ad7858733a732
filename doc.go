// Package veilmail provides a Go client for the VeilMail email API:
// transactional and marketing sends, domains, templates, audiences,
// campaigns, sequences, webhooks, analytics and the rest of the /v1 surface.
//
// Every resource is reached through a service field on Client. Each method
// performs exactly one HTTP request; nothing is retried, cached or paginated
// behind the caller's back.
//
// Basic usage:
//
//	client, err := veilmail.New(os.Getenv("VEILMAIL_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	email, err := client.Emails.Send(ctx, &veilmail.SendEmailParams{
//	    From:    "hello@example.com",
//	    To:      []string{"user@example.com"},
//	    Subject: "Welcome",
//	    HTML:    "<p>Thanks for signing up.</p>",
//	})
//
// Failed calls return an *Error whose Kind tells what went wrong:
//
//	var apiErr *veilmail.Error
//	if errors.As(err, &apiErr) && apiErr.Kind == veilmail.KindRateLimited {
//	    time.Sleep(apiErr.RetryAfter)
//	}
//
// Sentinels such as ErrNotFound and ErrRateLimited work with errors.Is.
//
// List calls return a single Page. Use Paginate to walk all pages.
package veilmail
