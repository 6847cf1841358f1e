package models_test

import (
	"encoding/json"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/waterworks/records/internal/models"
)

var _ = Describe("Date", func() {
	Describe("ParseDate", func() {
		It("should accept calendar dates", func() {
			d, err := models.ParseDate("2024-01-11")
			Expect(err).NotTo(HaveOccurred())
			Expect(d.String()).To(Equal("2024-01-11"))
			Expect(d.Location()).To(Equal(time.UTC))
		})

		It("should truncate RFC 3339 timestamps to the day", func() {
			d, err := models.ParseDate("2024-03-05T17:45:00Z")
			Expect(err).NotTo(HaveOccurred())
			Expect(d.String()).To(Equal("2024-03-05"))
			Expect(d.Hour()).To(BeZero())
		})

		It("should reject anything else", func() {
			_, err := models.ParseDate("05/03/2024")
			Expect(err).To(MatchError(ContainSubstring("expected YYYY-MM-DD")))
		})
	})

	Describe("DaysUntil", func() {
		It("should count whole days forward and backward", func() {
			start := models.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
			end := models.NewDate(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))
			Expect(start.DaysUntil(end)).To(Equal(10))
			Expect(end.DaysUntil(start)).To(Equal(-10))
			Expect(start.DaysUntil(start)).To(Equal(0))
		})

		It("should span leap days", func() {
			start, _ := models.ParseDate("2024-02-28")
			end, _ := models.ParseDate("2024-03-01")
			Expect(start.DaysUntil(end)).To(Equal(2))
		})

		It("should count spans longer than a time.Duration holds", func() {
			start, _ := models.ParseDate("1700-01-01")
			end, _ := models.ParseDate("2024-01-01")
			Expect(start.DaysUntil(end)).To(Equal(118338))
			Expect(end.DaysUntil(start)).To(Equal(-118338))
		})
	})

	Describe("JSON", func() {
		type wrapper struct {
			When models.Date `json:"when"`
		}

		It("should round-trip as YYYY-MM-DD", func() {
			var w wrapper
			Expect(json.Unmarshal([]byte(`{"when":"2024-06-30"}`), &w)).To(Succeed())
			out, err := json.Marshal(w)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{"when":"2024-06-30"}`))
		})

		It("should render the zero date as null", func() {
			out, err := json.Marshal(wrapper{})
			Expect(err).NotTo(HaveOccurred())
			Expect(string(out)).To(Equal(`{"when":null}`))
		})

		It("should reject numbers", func() {
			var w wrapper
			Expect(json.Unmarshal([]byte(`{"when":20240630}`), &w)).NotTo(Succeed())
		})
	})

	Describe("Scan", func() {
		It("should accept driver times, text and NULL", func() {
			var d models.Date
			Expect(d.Scan(time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC))).To(Succeed())
			Expect(d.String()).To(Equal("2024-05-01"))

			Expect(d.Scan("2024-05-02 00:00:00+00:00")).To(Succeed())
			Expect(d.String()).To(Equal("2024-05-02"))

			Expect(d.Scan([]byte("2024-05-03"))).To(Succeed())
			Expect(d.String()).To(Equal("2024-05-03"))

			Expect(d.Scan(nil)).To(Succeed())
			Expect(d.IsZero()).To(BeTrue())
		})

		It("should reject unsupported types", func() {
			var d models.Date
			Expect(d.Scan(42)).To(MatchError(ContainSubstring("cannot scan int")))
		})
	})

	Describe("Value", func() {
		It("should store NULL for the zero date", func() {
			v, err := models.Date{}.Value()
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(BeNil())
		})
	})
})
