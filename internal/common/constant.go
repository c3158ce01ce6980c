// Package common contains shared constants and sentinel errors used across
// thingful components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ErrorDomain identifies rejection reasons produced by this service.
const ErrorDomain = "thingful.auth"
