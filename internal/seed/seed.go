// Package seed fills a database with fake but consistent records for local
// development and demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
)

// DefaultPassword is set on every seeded account.
const DefaultPassword = "password123"

type Options struct {
	Users            int
	MetersPerUser    int
	ReadingsPerMeter int
	// Seed of 0 picks a random one.
	Seed uint64
}

type Result struct {
	Users    []models.User
	Meters   []models.WaterMeter
	Readings int
	Bills    int
	Methods  int
}

var methodCatalog = []struct {
	name, description string
	cost              string
	rating            int
}{
	{"Low-flow showerheads", "Replace standard showerheads with 6 L/min fixtures", "35.00", 4},
	{"Dual-flush toilets", "Retrofit toilets with dual-flush valves", "180.00", 5},
	{"Rainwater harvesting", "Collect roof runoff for garden irrigation", "650.00", 3},
	{"Drip irrigation", "Replace sprinklers with drip lines on timers", "220.00", 4},
	{"Leak detection audit", "Annual inspection of pipes and fittings", "90.00", 2},
}

// Run inserts users with sources, meters, consumption readings and one bill
// per user, plus the conservation method catalog, all through the store.
func Run(ctx context.Context, st *store.Store, opts Options) (*Result, error) {
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.MetersPerUser <= 0 {
		opts.MetersPerUser = 1
	}
	if opts.ReadingsPerMeter <= 0 {
		opts.ReadingsPerMeter = 5
	}
	faker := gofakeit.New(opts.Seed)

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	for _, m := range methodCatalog {
		_, err := st.CreateMethod(ctx, store.NewMethod{
			MethodName:       m.name,
			Description:      m.description,
			Cost:             decimal.RequireFromString(m.cost),
			EfficiencyRating: m.rating,
		})
		if err != nil {
			return nil, fmt.Errorf("seed method %q: %w", m.name, err)
		}
		res.Methods++
	}

	for i := 0; i < opts.Users; i++ {
		u, err := st.CreateUser(ctx, store.NewUser{
			Name:         faker.Name(),
			Address:      faker.Street() + ", " + faker.City(),
			Phone:        faker.Phone(),
			Email:        fmt.Sprintf("%d.%s", i, faker.Email()),
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		})
		if err != nil {
			return nil, fmt.Errorf("seed user: %w", err)
		}
		res.Users = append(res.Users, *u)

		srcType := models.SourceMunicipal
		if faker.Bool() {
			srcType = models.SourceGroundwater
		}
		if _, err := st.CreateSource(ctx, store.NewSource{
			UserID:   u.ID,
			Name:     faker.Adjective() + " supply",
			Type:     srcType,
			Capacity: float64(faker.IntRange(500, 20000)),
			Location: faker.Street(),
		}); err != nil {
			return nil, fmt.Errorf("seed water source: %w", err)
		}

		var usage float64
		for j := 0; j < opts.MetersPerUser; j++ {
			m, err := st.CreateMeter(ctx, store.NewMeter{
				UserID:           u.ID,
				Location:         faker.Street(),
				InstallationDate: models.NewDate(faker.DateRange(time.Now().AddDate(-3, 0, 0), time.Now())),
			})
			if err != nil {
				return nil, fmt.Errorf("seed water meter: %w", err)
			}
			res.Meters = append(res.Meters, *m)

			for k := 0; k < opts.ReadingsPerMeter; k++ {
				volume := faker.Float64Range(50, 900)
				usage += volume
				if _, err := st.CreateConsumption(ctx, store.NewConsumption{
					MeterNumber: m.MeterNumber,
					VolumeUsed:  volume,
					At:          time.Now().AddDate(0, 0, -k),
				}); err != nil {
					return nil, fmt.Errorf("seed consumption: %w", err)
				}
				res.Readings++
			}
		}

		end := models.NewDate(time.Now().AddDate(0, 0, -1))
		if _, err := st.CreateBill(ctx, store.NewBill{
			UserID:      u.ID,
			PeriodStart: models.NewDate(end.AddDate(0, -1, 0)),
			PeriodEnd:   end,
			TotalUsage:  usage,
			AmountDue:   decimal.NewFromFloat(usage).Mul(decimal.RequireFromString("0.0025")).Round(2),
		}); err != nil {
			return nil, fmt.Errorf("seed bill: %w", err)
		}
		res.Bills++
	}

	return res, nil
}
