package utils_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/waterworks/records/internal/utils"
)

var _ = Describe("DecodeJSON", func() {
	type body struct {
		Name string `json:"name"`
	}

	decode := func(payload string) (*httptest.ResponseRecorder, body, error) {
		var v body
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		err := utils.DecodeJSON(rec, req, &v)
		return rec, v, err
	}

	It("should decode known fields", func() {
		_, v, err := decode(`{"name":"well"}`)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.Name).To(Equal("well"))
	})

	It("should reject unknown fields with 400", func() {
		rec, _, err := decode(`{"name":"well","extra":1}`)
		Expect(err).To(HaveOccurred())
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("invalid JSON"))
	})

	It("should reject an empty body", func() {
		rec, _, err := decode(``)
		Expect(err).To(HaveOccurred())
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(rec.Body.String()).To(ContainSubstring("empty request body"))
	})
})

var _ = Describe("JSON", func() {
	It("should set the content type and status", func() {
		rec := httptest.NewRecorder()
		utils.JSONError(rec, http.StatusTeapot, "nope")
		Expect(rec.Code).To(Equal(http.StatusTeapot))
		Expect(rec.Header().Get("Content-Type")).To(Equal("application/json"))
		Expect(rec.Body.String()).To(MatchJSON(`{"error":"nope"}`))
	})
})
