package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"golang.org/x/net/proxy"

	"statuspage-geckoboard/config"
)

// NewHTTPClient builds the client shared by the Statuspage and Geckoboard
// clients. A zero HTTPTimeout keeps the net/http default of no timeout.
func NewHTTPClient(cfg *config.Config) (*http.Client, error) {
	client := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	if cfg.ProxyURL != "" {
		transport, err := createProxyTransport(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create proxy transport: %w", err)
		}
		client.Transport = transport
	}

	return client, nil
}

func createProxyTransport(cfg *config.Config) (*http.Transport, error) {
	proxyURL, err := url.Parse(cfg.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL '%s': %w", cfg.ProxyURL, err)
	}
	if proxyURL.Host == "" {
		return nil, fmt.Errorf("invalid proxy URL '%s': missing host", cfg.ProxyURL)
	}

	if cfg.ProxyType == "socks5" {
		var auth *proxy.Auth
		if cfg.ProxyUser != "" && cfg.ProxyPass != "" {
			auth = &proxy.Auth{
				User:     cfg.ProxyUser,
				Password: cfg.ProxyPass,
			}
		}

		dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}

		return &http.Transport{
			DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
				if cd, ok := dialer.(proxy.ContextDialer); ok {
					return cd.DialContext(ctx, network, addr)
				}
				return dialer.Dial(network, addr)
			},
		}, nil
	}

	if cfg.ProxyUser != "" && cfg.ProxyPass != "" {
		proxyURL.User = url.UserPassword(cfg.ProxyUser, cfg.ProxyPass)
	}

	return &http.Transport{
		Proxy: http.ProxyURL(proxyURL),
	}, nil
}
