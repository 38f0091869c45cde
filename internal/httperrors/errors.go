// Copyright (c) 2025 Chatty
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors turns HTTP and network failures into short, user-facing
// reasons. Gateways use Reason to fill the message of an authentication
// failure; commands that talk to the API directly use FormatNetworkError to
// print a longer troubleshooting note.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category is the detected class of a network error.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	Server
)

// Classify detects the category of err.
func Classify(err error) Category {
	switch {
	case err == nil:
		return Generic
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return TLS
	case isServerError(err.Error()):
		return Server
	}
	return Generic
}

// Reason returns a one-line description of err suitable for a notice.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case Timeout:
		return "The server took too long to respond"
	case DNS:
		return "Cannot resolve the server address"
	case ConnectionRefused:
		return "The server is not accepting connections"
	case TLS:
		return "A secure connection to the server could not be established"
	case Server:
		return "The server encountered an internal error"
	}
	return "Cannot connect to the chat service"
}

// FormatNetworkError prints a troubleshooting note for err and returns it wrapped.
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}
	pterm.Error.Printf("%s while %s\n", Reason(err), context)
	switch Classify(err) {
	case Timeout, Generic:
		pterm.Println("Please check your internet connection and try again in a few moments.")
	case DNS:
		pterm.Println("Check that DNS works and that the endpoint in 'chatty config' is correct.")
	case ConnectionRefused:
		pterm.Println("The service may be down, or the configured endpoint or port is wrong.")
	case TLS:
		pterm.Println("Check your system clock and any proxy intercepting HTTPS traffic.")
	case Server:
		pterm.Println("This is not a problem with your setup. Please try again later.")
	}
	pterm.Debug.Printf("Technical details: %s\n", abbreviate(err.Error(), 100))
	return fmt.Errorf("network error: %w", err)
}

func abbreviate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "ssl") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// isServerError checks if the error indicates a server-side problem (5xx errors).
func isServerError(errStr string) bool {
	lower := strings.ToLower(errStr)
	return strings.Contains(lower, "500") ||
		strings.Contains(lower, "502") ||
		strings.Contains(lower, "503") ||
		strings.Contains(lower, "504") ||
		strings.Contains(lower, "internal server error") ||
		strings.Contains(lower, "bad gateway") ||
		strings.Contains(lower, "service unavailable") ||
		strings.Contains(lower, "gateway timeout")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
