// Package api talks to the document extraction API over HTTP.
//
// Gateway is the only outbound path that carries the bearer credential.
// TokenIssuer performs the unauthenticated sign-in exchange.
package api
