package handlers

import (
	userRepoPkg "riggerbackend/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// User endpoints
	RegisterUserHandler        gin.HandlerFunc
	AuthenticateUserHandler    gin.HandlerFunc
	GetUserByIDHandler         gin.HandlerFunc
	UpdateUserHandler          gin.HandlerFunc
	DeleteUserHandler          gin.HandlerFunc
	RevokeUserAuthTokenHandler gin.HandlerFunc

	// Job endpoints
	CreateJobHandler   gin.HandlerFunc
	GetJobHandler      gin.HandlerFunc
	SearchJobsHandler  gin.HandlerFunc
	UpdateJobHandler   gin.HandlerFunc
	AssignJobHandler   gin.HandlerFunc
	CompleteJobHandler gin.HandlerFunc
	CancelJobHandler   gin.HandlerFunc
	DeleteJobHandler   gin.HandlerFunc

	// Billing endpoints
	ProcessJobPaymentHandler     gin.HandlerFunc
	ProcessRenewalHandler        gin.HandlerFunc
	ProcessRecruitmentFeeHandler gin.HandlerFunc

	// Earnings endpoints
	GetEarningsSummaryHandler gin.HandlerFunc
	GetEarningsReportHandler  gin.HandlerFunc

	// Transparency endpoints
	GetTransparencyReportHandler gin.HandlerFunc
	GetPublicDashboardHandler    gin.HandlerFunc
	ReconcileLedgerHandler       gin.HandlerFunc
}
