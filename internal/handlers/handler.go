package handlers

import (
	"github.com/waterworks/records/internal/metrics"
	"github.com/waterworks/records/internal/store"
	"github.com/waterworks/records/internal/utils"
)

// Deps are the collaborators shared by every resource handler.
type Deps struct {
	Store             *store.Store
	AccessTokens      *utils.TokenIssuer
	RefreshTokens     *utils.TokenIssuer
	BcryptCost        int
	ExposeErrorDetail bool
	Metrics           *metrics.Metrics
}

type Handler struct {
	Auth            *AuthHandler
	Users           *UserHandler
	Sources         *SourceHandler
	Meters          *MeterHandler
	Consumption     *ConsumptionHandler
	Billing         *BillingHandler
	Methods         *MethodHandler
	Implementations *ImplementationHandler
	Savings         *SavingsHandler
	Alerts          *AlertHandler
	Health          *HealthHandler
}

func NewHandler(d Deps) *Handler {
	b := &base{store: d.Store, metrics: d.Metrics, exposeDetail: d.ExposeErrorDetail}
	return &Handler{
		Auth:            NewAuthHandler(b, d.AccessTokens, d.RefreshTokens, d.BcryptCost),
		Users:           &UserHandler{base: b, bcryptCost: d.BcryptCost},
		Sources:         &SourceHandler{base: b},
		Meters:          &MeterHandler{base: b},
		Consumption:     &ConsumptionHandler{base: b},
		Billing:         &BillingHandler{base: b},
		Methods:         &MethodHandler{base: b},
		Implementations: &ImplementationHandler{base: b},
		Savings:         &SavingsHandler{base: b},
		Alerts:          &AlertHandler{base: b},
		Health:          &HealthHandler{base: b},
	}
}
