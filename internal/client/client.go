package client

import (
	"bytes"
	"context"
	"crypto"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"code.superseriousbusiness.org/httpsig"
	"github.com/rs/zerolog/log"
	"github.com/sidereusnuntius/gopress/internal/db"
	"github.com/sidereusnuntius/gopress/internal/utils"
)

const (
	userAgent = "gopress"
	// MaxPage bounds how much of a remote page is read.
	MaxPage = 1 << 20
)

// ErrStatus is returned when the remote answers with a 4xx or 5xx status.
var ErrStatus = errors.New("remote answered with an error status")

var prefs = []httpsig.Algorithm{httpsig.RSA_SHA256}
var postHeaders = []string{httpsig.RequestTarget, "date", "digest"}

// HttpClient talks to other sites on behalf of the installation: it delivers signed webhook payloads, sends
// weblogs pings and fetches the pages that claim to link to an entry.
type HttpClient struct {
	client          *http.Client
	key             crypto.PrivateKey
	keyID           *url.URL
	postSigner      httpsig.Signer
	postSignerMutex sync.Mutex
}

func New(client *http.Client, key crypto.PrivateKey, prefs []httpsig.Algorithm, keyID *url.URL) (*HttpClient, error) {
	postSigner, _, err := httpsig.NewSigner(prefs, httpsig.DigestSha256, postHeaders, httpsig.Signature, 3600)
	if err != nil {
		return nil, err
	}

	return &HttpClient{
		client:     client,
		key:        key,
		keyID:      keyID,
		postSigner: postSigner,
	}, nil
}

// FromDB builds a client signing with the installation key stored in the database. The key id is the
// installation url with a #main-key fragment.
func FromDB(ctx context.Context, d db.DB, client *http.Client, base *url.URL) (*HttpClient, error) {
	pem, err := d.LoadSigningKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("load signing key: %w", err)
	}
	key, err := utils.ParsePrivateKeyPem(pem)
	if err != nil {
		return nil, fmt.Errorf("parse signing key: %w", err)
	}
	keyID := *base
	keyID.Fragment = "main-key"
	return New(client, key, prefs, &keyID)
}

// Deliver posts a signed JSON body.
func (c *HttpClient) Deliver(ctx context.Context, body []byte, to *url.URL) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, to.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/activity+json")
	req.Header.Set("User-Agent", userAgent)

	c.postSignerMutex.Lock()
	req.Header.Set("Date", time.Now().UTC().Format(http.TimeFormat))
	err = c.postSigner.SignRequest(c.key, c.keyID.String(), req, body)
	c.postSignerMutex.Unlock()
	if err != nil {
		log.Error().Err(err).Msg("error while signing request")
		return err
	}

	_, err = c.do(req)
	return err
}

// PostXML sends an XML-RPC request body and returns the response body.
func (c *HttpClient) PostXML(ctx context.Context, to *url.URL, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, to.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml")
	req.Header.Set("User-Agent", userAgent)
	return c.do(req)
}

// FetchPage returns at most MaxPage bytes of the document at u.
func (c *HttpClient) FetchPage(ctx context.Context, u *url.URL) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/html, */*")
	req.Header.Set("User-Agent", userAgent)
	body, err := c.do(req)
	return string(body), err
}

func (c *HttpClient) do(req *http.Request) ([]byte, error) {
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, MaxPage))
	if res.StatusCode >= http.StatusBadRequest {
		log.Error().
			Str("url", req.URL.String()).
			Int("code", res.StatusCode).
			Bytes("response body", body).
			Msg("request failed")
		return nil, fmt.Errorf("%w: %d %s", ErrStatus, res.StatusCode, http.StatusText(res.StatusCode))
	}
	return body, err
}
