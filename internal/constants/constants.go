package constants

import (
	"math"
	"time"
)

// Context keys shared between middleware and handlers
const (
	ContextKeyIdentity  = "identity"
	ContextKeyUserID    = "user_id"
	ContextKeyRequestID = "request_id"
)

// HeaderRequestID is the header used to propagate request ids
const HeaderRequestID = "X-Request-ID"

// Pagination
const (
	DefaultPage     = 1
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*limit from overflowing
	MaxPage = math.MaxInt / MaxPageSize
)

// Credentials
const (
	MinPasswordLength = 6
	BcryptCost        = 12
)

// Password recovery
const (
	OTPMin        = 100000
	OTPMax        = 999999
	DefaultOTPTTL = 10 * time.Minute
)

// Tokens
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
	TokenIssuer            = "task-api"
)

// MaxAIGeneratedTasks caps the number of drafts accepted from the AI service
const MaxAIGeneratedTasks = 20
