package api

import (
	"net/http"
	"net/url"
)

// Cookies returns the cookies held for the API host.
func (c *Client) Cookies() []*http.Cookie {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil
	}
	return c.http.Jar().Cookies(u)
}

// SetCookies seeds the jar, e.g. with cookies saved by an earlier run.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	u, err := url.Parse(c.baseURL)
	if err != nil || len(cookies) == 0 {
		return
	}
	c.http.Jar().SetCookies(u, cookies)
}
