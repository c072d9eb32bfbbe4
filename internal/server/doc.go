// Package server is the HTTP transport in front of the board engine. Each
// route translates one request into exactly one engine call and serializes
// the result as JSON; the package also serves the bundled frontend and
// mounts the live feed endpoint.
package server
