// Package httpapi exposes chat and ingestion over a gin HTTP server.
// Chat responses stream as server-sent events; ingestion is protected by an
// optional shared secret.
package httpapi
