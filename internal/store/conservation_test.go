package store_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
)

var _ = Describe("Conservation", func() {
	var (
		ctx context.Context
		st  *store.Store
		ana *models.User
		bob *models.User
	)

	BeforeEach(func() {
		ctx = context.Background()
		st, _ = newStore(ctx)
		ana = mustUser(ctx, st, "Ana")
		bob = mustUser(ctx, st, "Bob")
	})

	Describe("methods", func() {
		It("should hand back the row it inserted", func() {
			m := mustMethod(ctx, st)
			Expect(m.ID).To(BeNumerically(">", 0))
			Expect(m.MethodName).To(Equal("Low-flow showerhead"))
			Expect(m.Cost.String()).To(Equal("35"))

			got, err := st.GetMethod(ctx, m.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.EfficiencyRating).To(Equal(4))
		})

		DescribeTable("rejecting ratings outside 1..5",
			func(rating int) {
				_, err := st.CreateMethod(ctx, store.NewMethod{
					MethodName:       "Drip",
					Description:      "Drip irrigation",
					Cost:             decimal.NewFromInt(10),
					EfficiencyRating: rating,
				})
				Expect(err).To(MatchError("efficiency rating must be between 1 and 5"))
				Expect(count(ctx, st, "conservation_methods")).To(BeZero())
			},
			Entry("zero", 0),
			Entry("six", 6),
			Entry("negative", -1),
		)

		It("should list in insertion order", func() {
			a := mustMethod(ctx, st)
			b := mustMethod(ctx, st)
			methods, err := st.ListMethods(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(methods).To(HaveLen(2))
			Expect(methods[0].ID).To(Equal(a.ID))
			Expect(methods[1].ID).To(Equal(b.ID))
		})

		It("should report unknown ids", func() {
			_, err := st.GetMethod(ctx, 42)
			Expect(err).To(MatchError("conservation method not found"))
		})
	})

	Describe("implementation records", func() {
		var method *models.ConservationMethod

		BeforeEach(func() {
			method = mustMethod(ctx, st)
		})

		It("should join the user and method names", func() {
			rec := mustImplementation(ctx, st, ana.ID, method.ID, "2024-01-01")
			Expect(rec.UserName).To(Equal("Ana"))
			Expect(rec.MethodName).To(Equal(method.MethodName))
			Expect(rec.DateImplemented.String()).To(Equal("2024-01-01"))
			Expect(rec.SavingsAchieved.String()).To(Equal("10"))
		})

		It("should persist nothing for an unknown method", func() {
			_, err := st.CreateImplementation(ctx, store.NewImplementation{
				UserID:          ana.ID,
				MethodID:        method.ID + 100,
				DateImplemented: date("2024-01-01"),
				Status:          models.ImplementationActive,
			})
			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(err).To(MatchError("conservation method not found"))
			Expect(count(ctx, st, "implementation_records")).To(BeZero())
		})

		It("should persist nothing for an unknown user", func() {
			_, err := st.CreateImplementation(ctx, store.NewImplementation{
				UserID:          999,
				MethodID:        method.ID,
				DateImplemented: date("2024-01-01"),
				Status:          models.ImplementationActive,
			})
			Expect(err).To(MatchError("user not found"))
			Expect(count(ctx, st, "implementation_records")).To(BeZero())
		})

		It("should reject negative savings and unknown statuses", func() {
			_, err := st.CreateImplementation(ctx, store.NewImplementation{
				UserID: ana.ID, MethodID: method.ID, DateImplemented: date("2024-01-01"),
				Status: models.ImplementationActive, SavingsAchieved: decimal.NewFromInt(-1),
			})
			Expect(err).To(MatchError(ContainSubstring("positive number")))

			_, err = st.CreateImplementation(ctx, store.NewImplementation{
				UserID: ana.ID, MethodID: method.ID, DateImplemented: date("2024-01-01"),
				Status: "paused",
			})
			Expect(err).To(MatchError(ContainSubstring("status must be")))
		})

		It("should list newest implementation first", func() {
			older := mustImplementation(ctx, st, ana.ID, method.ID, "2024-01-01")
			newer := mustImplementation(ctx, st, ana.ID, method.ID, "2024-03-01")
			mustImplementation(ctx, st, bob.ID, method.ID, "2024-02-01")

			recs, err := st.ListImplementations(ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(recs).To(HaveLen(2))
			Expect(recs[0].ID).To(Equal(newer.ID))
			Expect(recs[1].ID).To(Equal(older.ID))

			got, err := st.GetImplementation(ctx, older.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserID).To(Equal(ana.ID))
		})
	})

	Describe("water savings", func() {
		var (
			meter *models.WaterMeter
			impl  *models.ImplementationRecord
		)

		BeforeEach(func() {
			meter = mustMeter(ctx, st, ana.ID)
			impl = mustImplementation(ctx, st, ana.ID, mustMethod(ctx, st).ID, "2024-01-01")
		})

		It("should derive and store the savings", func() {
			s, err := st.CreateSaving(ctx, store.NewSaving{
				UserID:           ana.ID,
				WaterMeterNumber: meter.MeterNumber,
				ImplementationID: impl.ID,
				EndDate:          date("2024-01-11"),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.WaterSaved.String()).To(Equal("7.2"))
			Expect(s.UserName).To(Equal("Ana"))
			Expect(s.MethodName).To(Equal(impl.MethodName))
			Expect(s.DateImplemented.String()).To(Equal("2024-01-01"))
			Expect(s.EndDate.String()).To(Equal("2024-01-11"))

			list, err := st.ListSavings(ctx, ana.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].WaterSaved.String()).To(Equal("7.2"))
		})

		It("should reject end dates before the implementation", func() {
			_, err := st.CreateSaving(ctx, store.NewSaving{
				UserID:           ana.ID,
				WaterMeterNumber: meter.MeterNumber,
				ImplementationID: impl.ID,
				EndDate:          date("2023-12-31"),
			})
			Expect(err).To(MatchError(ContainSubstring("endDate must not be before")))
			Expect(count(ctx, st, "water_savings")).To(BeZero())
		})

		It("should reject meters that belong to someone else", func() {
			_, err := st.CreateSaving(ctx, store.NewSaving{
				UserID:           bob.ID,
				WaterMeterNumber: meter.MeterNumber,
				ImplementationID: impl.ID,
				EndDate:          date("2024-01-11"),
			})
			Expect(err).To(MatchError("water meter does not belong to this user"))
		})

		It("should reject implementations that belong to someone else", func() {
			bobMeter := mustMeter(ctx, st, bob.ID)
			_, err := st.CreateSaving(ctx, store.NewSaving{
				UserID:           bob.ID,
				WaterMeterNumber: bobMeter.MeterNumber,
				ImplementationID: impl.ID,
				EndDate:          date("2024-01-11"),
			})
			Expect(err).To(MatchError("implementation record does not belong to this user"))
		})

		It("should report unknown meters and implementations", func() {
			_, err := st.CreateSaving(ctx, store.NewSaving{
				UserID: ana.ID, WaterMeterNumber: "WM0", ImplementationID: impl.ID, EndDate: date("2024-01-11"),
			})
			Expect(err).To(MatchError("water meter not found"))

			_, err = st.CreateSaving(ctx, store.NewSaving{
				UserID: ana.ID, WaterMeterNumber: meter.MeterNumber, ImplementationID: 999, EndDate: date("2024-01-11"),
			})
			Expect(err).To(MatchError("implementation record not found"))
		})
	})
})
