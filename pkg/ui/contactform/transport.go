package contactform

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
)

// Transport posts a JSON body and returns the raw response.
type Transport interface {
	PostJSON(ctx context.Context, url string, body any) (status int, respBody []byte, err error)
}

type restyTransport struct {
	http *resty.Client
}

// NewTransport returns a Transport backed by resty. In the browser build
// requests go through fetch.
func NewTransport() Transport {
	return &restyTransport{
		http: resty.New().
			SetTimeout(30*time.Second).
			SetHeader("Accept", "application/json"),
	}
}

func (t *restyTransport) PostJSON(ctx context.Context, url string, body any) (int, []byte, error) {
	resp, err := t.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(url)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}
