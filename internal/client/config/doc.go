// Package config loads runtime configuration for the eventdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config; the format
//     follows the file extension (.yaml/.yml, anything else is JSON).
//  3. EVENTDESK_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   REST API base URL
//	-w string   push channel URL
//	-d string   session database path
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # File schema
//
// Durations use timex.Duration, so "10s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "http://localhost:5000/api",
//	  "push_url": "ws://localhost:5000/ws",
//	  "db_path": "eventdesk.db",
//	  "request_timeout": "10s",
//	  "log_level": "info",
//	  "log_format": "console",
//	  "notification_ack": "dismiss"
//	}
//
// Environment variables use the same names upper-cased with the EVENTDESK_
// prefix, e.g. EVENTDESK_API_BASE_URL.
package config
