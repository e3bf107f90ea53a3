// Package nav resolves in-app destinations. The only destination today is a
// chat with a friend.
package nav

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrNoFriend is returned when a chat is requested without a friend ID.
var ErrNoFriend = errors.New("no friend id")

// ChatPath returns the route of the chat with the friend identified by id.
func ChatPath(id string) string {
	return "/chat/" + url.PathEscape(id)
}

// OpenChat requests navigation to the chat with a friend.
type OpenChat struct {
	FriendID string
}

// Destination is a resolved navigation target. URL is empty when no web
// base URL is configured.
type Destination struct {
	Path string
	URL  string
}

// Router turns navigation requests into destinations.
type Router struct {
	base *url.URL
}

// NewRouter returns a router that builds absolute URLs against webURL.
// An empty webURL yields path-only destinations.
func NewRouter(webURL string) (*Router, error) {
	if webURL == "" {
		return &Router{}, nil
	}
	u, err := url.Parse(strings.TrimRight(webURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse web url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("web url %q must include scheme and host", webURL)
	}
	return &Router{base: u}, nil
}

// Resolve returns the destination for req.
func (r *Router) Resolve(req OpenChat) (Destination, error) {
	if req.FriendID == "" {
		return Destination{}, ErrNoFriend
	}
	d := Destination{Path: ChatPath(req.FriendID)}
	if r != nil && r.base != nil {
		d.URL = r.base.String() + d.Path
	}
	return d, nil
}
