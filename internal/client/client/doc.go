// Package client talks to the eventdesk backend.
//
// # Overview
//
//  1. Transport contracts: EventStore and AuthAPI (together Client) for the
//     REST API, Channel and Subscription for the push channel.
//  2. RESTClient, a resty-based implementation of Client. Every request gets
//     an X-Request-ID; mutating event calls carry the bearer token.
//  3. WSChannel, a WebSocket implementation of Channel decoding
//     {"event":"newBooking","data":{"message":"..."}} frames.
//  4. InitDatabase and RunMigrations, which open the local SQLite session
//     store and apply the embedded goose migrations.
//
// # Error Handling
//
// HTTP outcomes are mapped to sentinel errors matched with errors.Is:
// ErrUnavailable (transport failure, 5xx), ErrUnauthorized (401/403),
// ErrNotFound (404), ErrRejected (400/409/422) and ErrUnexpectedStatus.
// Nothing in this package retries.
package client
