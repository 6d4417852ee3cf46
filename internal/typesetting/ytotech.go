package typesetting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

const buildPath = "/builds/sync"

var pdfMagic = []byte("%PDF")

// maxErrorBody bounds how much of a failed response ends up in a message
const maxErrorBody = 300

type resource struct {
	Main    bool   `json:"main"`
	Content string `json:"content"`
}

type buildRequest struct {
	Compiler  string     `json:"compiler"`
	Resources []resource `json:"resources"`
}

// YtoTechJSON posts the document as a JSON resource list
type YtoTechJSON struct {
	http   *resty.Client
	url    string
	engine string
}

// NewYtoTechJSON creates the primary backend
func NewYtoTechJSON(baseURL, engine string) *YtoTechJSON {
	return &YtoTechJSON{
		http:   newHTTPClient(),
		url:    strings.TrimRight(baseURL, "/") + buildPath,
		engine: engine,
	}
}

// Name implements Backend
func (y *YtoTechJSON) Name() string { return "YtoTech JSON POST" }

// Compile implements Compiler
func (y *YtoTechJSON) Compile(ctx context.Context, source string) ([]byte, error) {
	resp, err := y.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/pdf").
		SetBody(buildRequest{
			Compiler:  y.engine,
			Resources: []resource{{Main: true, Content: source}},
		}).
		Post(y.url)
	return checkResponse(y.Name(), resp, err)
}

// YtoTechGET sends the document as a query parameter. Very large documents
// may exceed URL limits; it only serves as a fallback.
type YtoTechGET struct {
	http   *resty.Client
	url    string
	engine string
}

// NewYtoTechGET creates the fallback backend
func NewYtoTechGET(baseURL, engine string) *YtoTechGET {
	return &YtoTechGET{
		http:   newHTTPClient(),
		url:    strings.TrimRight(baseURL, "/") + buildPath,
		engine: engine,
	}
}

// Name implements Backend
func (y *YtoTechGET) Name() string { return "YtoTech GET" }

// Compile implements Compiler
func (y *YtoTechGET) Compile(ctx context.Context, source string) ([]byte, error) {
	resp, err := y.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/pdf").
		SetQueryParams(map[string]string{
			"content":  source,
			"compiler": y.engine,
		}).
		Get(y.url)
	return checkResponse(y.Name(), resp, err)
}

func newHTTPClient() *resty.Client {
	return resty.New().SetLogger(restyLogger{})
}

// checkResponse accepts 200 or 201 with a body that starts with the PDF
// magic bytes
func checkResponse(backend string, resp *resty.Response, err error) ([]byte, error) {
	if err != nil {
		if isTimeout(err) {
			return nil, &BackendError{Backend: backend, Message: "request timeout", Cause: err}
		}
		return nil, &BackendError{Backend: backend, Message: "network error: " + truncate(err.Error(), 100), Cause: err}
	}

	body := resp.Body()
	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated:
	default:
		text := truncate(string(body), maxErrorBody)
		if text == "" {
			text = "unknown error"
		}
		return nil, &BackendError{Backend: backend, Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode(), text)}
	}

	if !bytes.HasPrefix(body, pdfMagic) {
		text := truncate(string(body), 200)
		if text == "" {
			text = "empty body"
		}
		return nil, &BackendError{Backend: backend, Message: "got non-PDF response: " + text}
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
