// Package http renders the hotel console. Every request mounts the views of
// its page against the browser's storage profile, lets them talk to the hotel
// API, and renders the result with the embedded templates.
package http
