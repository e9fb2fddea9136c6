package model

import "time"

// Frontend error kinds as reported by the web client.
const (
	ErrorTypeJavascript = "javascript"
	ErrorTypeReact      = "react"
	ErrorTypePromise    = "promise"
	ErrorTypeConsole    = "console"
)

// FrontendError is a diagnostic record posted by the web client. The server
// only stores and lists these; it never interprets them.
type FrontendError struct {
	ID             string    `json:"id"`
	UserEmail      string    `json:"user_email,omitempty"`
	ErrorType      string    `json:"error_type"`
	ErrorMessage   string    `json:"error_message"`
	ErrorStack     string    `json:"error_stack,omitempty"`
	ComponentStack string    `json:"component_stack,omitempty"`
	URL            string    `json:"url,omitempty"`
	UserAgent      string    `json:"user_agent,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
