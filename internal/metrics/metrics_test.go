package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	dto "github.com/prometheus/client_model/go"

	"github.com/waterworks/records/internal/metrics"
)

func family(m *metrics.Metrics, name string) *dto.MetricFamily {
	families, err := m.Registry.Gather()
	Expect(err).NotTo(HaveOccurred())
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	return nil
}

var _ = Describe("Metrics", func() {
	It("should keep instances independent", func() {
		a, b := metrics.New(), metrics.New()
		a.Created("water_meter")

		Expect(family(a, "waterworks_records_created_total")).NotTo(BeNil())
		Expect(family(b, "waterworks_records_created_total")).To(BeNil())
	})

	It("should count created records per entity", func() {
		m := metrics.New()
		m.Created("billing")
		m.Created("billing")
		m.Created("alert")

		f := family(m, "waterworks_records_created_total")
		Expect(f).NotTo(BeNil())
		Expect(f.GetType()).To(Equal(dto.MetricType_COUNTER))

		byEntity := map[string]float64{}
		for _, metric := range f.GetMetric() {
			for _, l := range metric.GetLabel() {
				if l.GetName() == "entity" {
					byEntity[l.GetValue()] = metric.GetCounter().GetValue()
				}
			}
		}
		Expect(byEntity).To(Equal(map[string]float64{"billing": 2, "alert": 1}))
	})

	It("should tolerate a nil receiver", func() {
		var m *metrics.Metrics
		Expect(func() { m.Created("billing") }).NotTo(Panic())
	})

	It("should serve the registry", func() {
		m := metrics.New()
		m.Records.BillsOverdueTotal.Add(3)

		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))

		body, err := io.ReadAll(rec.Body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(body)).To(ContainSubstring("waterworks_bills_marked_overdue_total 3"))
		Expect(string(body)).To(ContainSubstring("go_goroutines"))
	})
})
