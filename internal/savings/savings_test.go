package savings_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/savings"
)

func date(s string) models.Date {
	d, err := models.ParseDate(s)
	Expect(err).NotTo(HaveOccurred())
	return d
}

var _ = Describe("Compute", func() {
	DescribeTable("liters saved",
		func(implemented, end, want string) {
			got := savings.Compute(date(implemented), date(end))
			Expect(got.String()).To(Equal(want))
		},
		Entry("ten days", "2024-01-01", "2024-01-11", "7.2"),
		Entry("same day", "2024-01-01", "2024-01-01", "0"),
		Entry("one day", "2024-05-31", "2024-06-01", "0.72"),
		Entry("a leap year", "2024-01-01", "2025-01-01", "263.52"),
		Entry("end before implementation", "2024-01-11", "2024-01-01", "-7.2"),
		Entry("more than 292 years", "1700-01-01", "2024-01-01", "85203.36"),
	)
})
