package http

import (
	"github.com/bankass/awards-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/bankass/awards-api/internal/infrastructure/jwt"
	s3infra "github.com/bankass/awards-api/internal/infrastructure/s3"
	"github.com/bankass/awards-api/internal/infrastructure/smtp"
	"github.com/bankass/awards-api/internal/infrastructure/sns"
	"github.com/bankass/awards-api/internal/pending"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	SessionRepo      *dynamo.SessionRepo
	CategoryRepo     *dynamo.CategoryRepo
	CandidateRepo    *dynamo.CandidateRepo
	VoteRepo         *dynamo.VoteRepo
	NotificationRepo *dynamo.NotificationRepo
	AdminMessageRepo *dynamo.AdminMessageRepo
	VerificationRepo *dynamo.VerificationRepo
	VotingConfigRepo *dynamo.VotingConfigRepo
	RegistrationRepo *dynamo.DeviceRegistrationRepo

	PendingSessions *pending.Store

	S3Store     *s3infra.Store
	Mailer      smtp.Mailer
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
}
