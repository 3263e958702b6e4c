package mediawiki

import (
	"context"

	"go.trai.ch/mirror/internal/core/domain"
	"go.trai.ch/zerr"
)

// Login opens an authenticated session with a bot password.
func (c *Client) Login(ctx context.Context, user, password string) error {
	var tokens struct {
		Query struct {
			Tokens struct {
				LoginToken string `json:"logintoken"`
			} `json:"tokens"`
		} `json:"query"`
	}
	err := c.call(ctx, request{
		params:     params("action", "query", "meta", "tokens", "type", "login"),
		idempotent: true,
	}, &tokens)
	if err != nil {
		return zerr.Wrap(domain.ErrWikiLoginFailed, err.Error())
	}

	var answer struct {
		Login struct {
			Result string `json:"result"`
			Reason string `json:"reason"`
		} `json:"login"`
	}
	err = c.call(ctx, request{
		params: params("action", "login", "lgname", user, "lgpassword", password,
			"lgtoken", tokens.Query.Tokens.LoginToken),
		post: true,
	}, &answer)
	if err != nil {
		return zerr.Wrap(domain.ErrWikiLoginFailed, err.Error())
	}
	if answer.Login.Result != "Success" {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrWikiLoginFailed, answer.Login.Reason),
			"user", user), "result", answer.Login.Result)
	}

	c.mu.Lock()
	c.csrfToken = ""
	c.mu.Unlock()
	return nil
}

// csrf returns the edit token of the session, fetching it once.
func (c *Client) csrf(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}

	var answer struct {
		Query struct {
			Tokens struct {
				CSRFToken string `json:"csrftoken"`
			} `json:"tokens"`
		} `json:"query"`
	}
	err := c.call(ctx, request{
		params:     params("action", "query", "meta", "tokens", "type", "csrf"),
		idempotent: true,
	}, &answer)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.csrfToken = answer.Query.Tokens.CSRFToken
	c.mu.Unlock()
	return answer.Query.Tokens.CSRFToken, nil
}

func (c *Client) resetCSRF() {
	c.mu.Lock()
	c.csrfToken = ""
	c.mu.Unlock()
}
