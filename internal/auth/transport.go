package auth

import "net/http"

// Transport attaches the stored credential to every outgoing request.
// Without a credential the request is forwarded untouched.
type Transport struct {
	// Store supplies the credential. Read on every request.
	Store Store

	// Base is the underlying RoundTripper. Defaults to http.DefaultTransport.
	Base http.RoundTripper
}

// NewTransport wraps base with credential augmentation.
func NewTransport(store Store, base http.RoundTripper) *Transport {
	return &Transport{Store: store, Base: base}
}

// RoundTrip implements http.RoundTripper.
// The caller's request is never modified; a clone carries the header.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	credential, ok := t.Store.Get()
	if !ok {
		return t.base().RoundTrip(req)
	}

	authReq := req.Clone(req.Context())
	authReq.Header.Set("Authorization", credential)
	return t.base().RoundTrip(authReq)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}
