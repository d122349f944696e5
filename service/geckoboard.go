package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"statuspage-geckoboard/config"
	"statuspage-geckoboard/model"
)

var ErrUnknownStatus = errors.New("unknown status")

const (
	StatusOK   = "OK"
	StatusDown = "DOWN"

	okBanner   = `<center style="background-color: green;"><strong>OK</strong></center>`
	downBanner = "<span style=\"background-color: red;\">%s - %s is <strong>DOWN!</strong></span>\n\n"
)

// Geckoboard push API error codes.
var pushStatusReasons = map[int]string{
	http.StatusBadRequest:            "Response body is empty or invalid JSON",
	http.StatusUnauthorized:          "You are not authorized to push to this widget",
	http.StatusForbidden:             "Widget does not support push/Your API key is invalid",
	http.StatusNotFound:              "The widget does not exist",
	http.StatusRequestEntityTooLarge: "The request body is too large",
	http.StatusTooManyRequests:       "You have exceeded your rate limit",
}

type IWidgetPusher interface {
	BuildMessage(status, platformName, productName string) (string, error)
	PushToWidget(ctx context.Context, message string) error
}

// BuildMessage renders the widget text for status "ok" or "down", matched
// case-insensitively. Names are only used for "down".
func BuildMessage(status, platformName, productName string) (string, error) {
	switch strings.ToLower(status) {
	case "ok":
		return okBanner, nil
	case "down":
		return fmt.Sprintf(downBanner, platformName, productName), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
}

// GeckoboardClient pushes text to one custom widget.
type GeckoboardClient struct {
	http            *http.Client
	credentialsFile string
	apiKey          string
	host            string
	widgetKey       string
	headers         http.Header
}

// NewGeckoboardClient loads the geckoboard section of credentialsFile. A nil
// httpClient uses a client with net/http defaults.
func NewGeckoboardClient(credentialsFile string, httpClient *http.Client) (*GeckoboardClient, error) {
	creds, resolved, err := config.LoadCredentials(credentialsFile, "geckoboard", config.GeckoboardKeys)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &GeckoboardClient{
		http:            httpClient,
		credentialsFile: resolved,
		apiKey:          creds["apikey"],
		host:            creds["host"],
		widgetKey:       creds["widgetkey"],
		headers:         jsonHeader(),
	}, nil
}

func (c *GeckoboardClient) CredentialsFile() string { return c.credentialsFile }

func (c *GeckoboardClient) APIKey() string { return c.apiKey }

func (c *GeckoboardClient) Host() string { return c.host }

func (c *GeckoboardClient) WidgetKey() string { return c.widgetKey }

func (c *GeckoboardClient) Headers() http.Header { return c.headers.Clone() }

func (c *GeckoboardClient) BuildMessage(status, platformName, productName string) (string, error) {
	return BuildMessage(status, platformName, productName)
}

// PushToWidget replaces the widget's text with message.
func (c *GeckoboardClient) PushToWidget(ctx context.Context, message string) error {
	url := apiScheme + c.host + "/v1/send/" + c.widgetKey
	payload := model.NewTextPayload(c.apiKey, message)

	err := doJSON(ctx, c.http, http.MethodPost, url, c.headers, payload, nil)
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		reqErr.Reason = pushReason(reqErr)
	}
	if err != nil {
		return fmt.Errorf("push to widget: %w", err)
	}

	log.Infof("pushed %d bytes to widget %s", len(message), c.widgetKey)
	return nil
}

// pushReason combines the documented meaning of the status code with the
// "message" field Geckoboard returns in error bodies.
func pushReason(e *RequestError) string {
	reason := pushStatusReasons[e.StatusCode]

	var body struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal([]byte(e.Body), &body) == nil {
		detail := body.Message
		if detail == "" {
			detail = body.Error.Message
		}
		if detail != "" && reason != "" {
			return reason + " :: " + detail
		}
		if detail != "" {
			return detail
		}
	}
	return reason
}
