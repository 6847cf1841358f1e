package utils_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/utils"
)

var _ = Describe("TokenIssuer", func() {
	var (
		issuer *utils.TokenIssuer
		user   *models.User
		now    time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		issuer = utils.NewTokenIssuer("access-secret", 15*time.Minute)
		issuer.Now = func() time.Time { return now }
		user = &models.User{ID: 7, Email: "ana@example.com", Role: models.RoleAdmin}
	})

	It("should round-trip the caller identity", func() {
		tok, exp, err := issuer.Generate(user)
		Expect(err).NotTo(HaveOccurred())
		Expect(exp).To(Equal(now.Add(15 * time.Minute)))

		claims, err := issuer.Verify(tok)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.Session()).To(Equal(models.Session{UserID: 7, Email: "ana@example.com", Role: models.RoleAdmin}))
	})

	It("should issue distinct tokens within the same second", func() {
		a, _, err := issuer.Generate(user)
		Expect(err).NotTo(HaveOccurred())
		b, _, err := issuer.Generate(user)
		Expect(err).NotTo(HaveOccurred())
		Expect(a).NotTo(Equal(b))
	})

	It("should reject expired tokens", func() {
		tok, _, err := issuer.Generate(user)
		Expect(err).NotTo(HaveOccurred())

		now = now.Add(16 * time.Minute)
		_, err = issuer.Verify(tok)
		Expect(err).To(HaveOccurred())
	})

	It("should reject tokens signed with another secret", func() {
		other := utils.NewTokenIssuer("refresh-secret", time.Hour)
		other.Now = issuer.Now
		tok, _, err := other.Generate(user)
		Expect(err).NotTo(HaveOccurred())

		_, err = issuer.Verify(tok)
		Expect(err).To(HaveOccurred())
	})

	It("should reject tokens without a valid role", func() {
		user.Role = "superuser"
		tok, _, err := issuer.Generate(user)
		Expect(err).NotTo(HaveOccurred())

		_, err = issuer.Verify(tok)
		Expect(err).To(MatchError("token missing subject or role"))
	})

	It("should refuse to sign without a secret", func() {
		_, _, err := utils.NewTokenIssuer("", time.Minute).Generate(user)
		Expect(err).To(MatchError("secret not configured"))
	})
})

var _ = Describe("ParseTTL", func() {
	DescribeTable("durations",
		func(in string, want time.Duration) {
			d, err := utils.ParseTTL(in, time.Hour)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(want))
		},
		Entry("default", "", time.Hour),
		Entry("minutes", "15m", 15*time.Minute),
		Entry("hours", "168h", 168*time.Hour),
		Entry("bare number as minutes", "30", 30*time.Minute),
	)

	It("should reject garbage", func() {
		_, err := utils.ParseTTL("soon", time.Hour)
		Expect(err).To(HaveOccurred())
	})
})
