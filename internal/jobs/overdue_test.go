package jobs_test

import (
	"bytes"
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/jobs"
	"github.com/waterworks/records/internal/metrics"
	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
	tu "github.com/waterworks/records/internal/testutil"
)

var _ = Describe("OverdueSweeper", func() {
	var (
		ctx     context.Context
		st      *store.Store
		user    *models.User
		sweeper *jobs.OverdueSweeper
		logs    *bytes.Buffer
		m       *metrics.Metrics
	)

	addBill := func(start, end string) {
		s, _ := models.ParseDate(start)
		e, _ := models.ParseDate(end)
		_, err := st.CreateBill(ctx, store.NewBill{
			UserID: user.ID, PeriodStart: s, PeriodEnd: e, TotalUsage: 10, AmountDue: decimal.NewFromInt(5),
		})
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		ctx = context.Background()
		conn, err := tu.NewSQLite(ctx)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(conn.Close)

		st = store.New(conn)
		user, err = st.CreateUser(ctx, store.NewUser{Name: "Ana", Email: "ana@example.com"})
		Expect(err).NotTo(HaveOccurred())

		logs = &bytes.Buffer{}
		m = metrics.New()
		sweeper = &jobs.OverdueSweeper{
			Store:     st,
			GraceDays: 14,
			Logger:    zerolog.New(logs),
			Metrics:   m,
			Now:       func() time.Time { return time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC) },
		}
	})

	It("should compute the cutoff from the grace period", func() {
		Expect(sweeper.Cutoff().String()).To(Equal("2024-03-06"))
	})

	It("should mark only bills past the grace period", func() {
		addBill("2024-01-01", "2024-01-31")
		addBill("2024-02-01", "2024-02-29")
		addBill("2024-03-01", "2024-03-10")

		marked, err := sweeper.Run(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(marked).To(HaveLen(2))
		Expect(testutil.ToFloat64(m.Records.BillsOverdueTotal)).To(Equal(2.0))
		Expect(logs.String()).To(ContainSubstring(`"marked":2`))

		alerts, err := st.ListAlerts(ctx, user.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(alerts).To(HaveLen(2))
	})

	It("should report store failures", func() {
		Expect(st.DB().Close()).To(Succeed())
		_, err := sweeper.Run(ctx)
		Expect(err).To(MatchError(ContainSubstring("overdue sweep")))
	})

	Describe("Start", func() {
		It("should reject malformed schedules", func() {
			_, err := jobs.Start(ctx, "every now and then", sweeper)
			Expect(err).To(MatchError(ContainSubstring("invalid schedule")))
		})

		It("should run the sweep on schedule", func() {
			addBill("2024-01-01", "2024-01-31")

			sched, err := jobs.Start(ctx, "@every 1s", sweeper)
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(sched.Stop)

			Eventually(func() float64 {
				return testutil.ToFloat64(m.Records.BillsOverdueTotal)
			}, 3*time.Second, 100*time.Millisecond).Should(Equal(1.0))
		})
	})
})
