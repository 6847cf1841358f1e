package store_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
)

var _ = Describe("Users", func() {
	var (
		ctx context.Context
		st  *store.Store
		now *time.Time
	)

	BeforeEach(func() {
		ctx = context.Background()
		st, now = newStore(ctx)
	})

	Describe("CreateUser", func() {
		It("should normalise and default the input", func() {
			u, err := st.CreateUser(ctx, store.NewUser{
				Name:  "  Ana  ",
				Email: " Ana@Example.COM ",
				Phone: "555-0100",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.Name).To(Equal("Ana"))
			Expect(u.Email).To(Equal("ana@example.com"))
			Expect(u.Role).To(Equal(models.RoleUser))
			Expect(u.CreatedAt).NotTo(BeZero())
		})

		It("should reject missing fields", func() {
			_, err := st.CreateUser(ctx, store.NewUser{Email: "a@b.c"})
			var verr *store.ValidationError
			Expect(err).To(BeAssignableToTypeOf(verr))
			Expect(count(ctx, st, "users")).To(BeZero())
		})

		It("should reject unknown roles", func() {
			_, err := st.CreateUser(ctx, store.NewUser{Name: "Ana", Email: "a@b.c", Role: "root"})
			Expect(err).To(MatchError(ContainSubstring("role must be")))
		})

		It("should report duplicate emails", func() {
			_, err := st.CreateUser(ctx, store.NewUser{Name: "Ana", Email: "ana@example.com"})
			Expect(err).NotTo(HaveOccurred())

			_, err = st.CreateUser(ctx, store.NewUser{Name: "Other", Email: "ANA@example.com"})
			Expect(err).To(MatchError(store.ErrDuplicate))
			Expect(err).To(MatchError("email already registered"))
		})
	})

	Describe("ListUsers", func() {
		It("should return an empty slice, not nil", func() {
			users, err := st.ListUsers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).NotTo(BeNil())
			Expect(users).To(BeEmpty())
		})

		It("should order by name", func() {
			mustUser(ctx, st, "Zoe")
			mustUser(ctx, st, "Ana")

			users, err := st.ListUsers(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(2))
			Expect(users[0].Name).To(Equal("Ana"))
			Expect(users[1].Name).To(Equal("Zoe"))
		})
	})

	Describe("lookups", func() {
		It("should find login users by email and role only", func() {
			_, err := st.CreateUser(ctx, store.NewUser{Name: "Ana", Email: "ana@example.com", Role: models.RoleAdmin})
			Expect(err).NotTo(HaveOccurred())

			u, err := st.FindLoginUser(ctx, "ANA@example.com", models.RoleAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Name).To(Equal("Ana"))

			_, err = st.FindLoginUser(ctx, "ana@example.com", models.RoleUser)
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("should report missing users as not found", func() {
			_, err := st.GetUser(ctx, 999)
			Expect(err).To(MatchError(store.ErrNotFound))
			Expect(err).To(MatchError("user not found"))
		})

		It("should accept only one first admin", func() {
			first := store.NewUser{Name: "Root", Email: "root@example.com", Role: models.RoleAdmin, FirstAdmin: true}
			_, err := st.CreateUser(ctx, first)
			Expect(err).NotTo(HaveOccurred())

			second := first
			second.Email = "eve@example.com"
			_, err = st.CreateUser(ctx, second)
			Expect(err).To(MatchError(store.ErrAdminExists))
			Expect(count(ctx, st, "users")).To(Equal(1))

			second.FirstAdmin = false
			_, err = st.CreateUser(ctx, second)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should let exactly one of concurrent first admins through", func() {
			errs := make(chan error, 4)
			for i := 0; i < 4; i++ {
				go func(i int) {
					defer GinkgoRecover()
					_, err := st.CreateUser(ctx, store.NewUser{
						Name:       "Root",
						Email:      fmt.Sprintf("root%d@example.com", i),
						Role:       models.RoleAdmin,
						FirstAdmin: true,
					})
					errs <- err
				}(i)
			}

			var created, rejected int
			for i := 0; i < 4; i++ {
				err := <-errs
				switch {
				case err == nil:
					created++
				case errors.Is(err, store.ErrAdminExists):
					rejected++
				}
			}
			Expect(created).To(Equal(1))
			Expect(rejected).To(Equal(3))
		})
	})

	Describe("refresh tokens", func() {
		var u *models.User

		BeforeEach(func() {
			u = mustUser(ctx, st, "Ana")
			Expect(st.SaveRefreshToken(ctx, u.ID, "t1", now.Add(time.Hour))).To(Succeed())
		})

		It("should rotate a live token exactly once", func() {
			Expect(st.RotateRefreshToken(ctx, u.ID, "t1", "t2", now.Add(time.Hour))).To(Succeed())
			Expect(st.RotateRefreshToken(ctx, u.ID, "t1", "t3", now.Add(time.Hour))).To(MatchError(store.ErrNotFound))
			Expect(st.RotateRefreshToken(ctx, u.ID, "t2", "t3", now.Add(time.Hour))).To(Succeed())
		})

		It("should refuse another user's token", func() {
			other := mustUser(ctx, st, "Bob")
			Expect(st.RotateRefreshToken(ctx, other.ID, "t1", "t2", now.Add(time.Hour))).To(MatchError(store.ErrNotFound))
		})

		It("should refuse expired tokens", func() {
			*now = now.Add(2 * time.Hour)
			Expect(st.RotateRefreshToken(ctx, u.ID, "t1", "t2", now.Add(time.Hour))).To(MatchError(store.ErrNotFound))
			Expect(count(ctx, st, "refresh_tokens")).To(Equal(1))
		})

		It("should revoke tokens", func() {
			Expect(st.RevokeRefreshToken(ctx, u.ID, "t1")).To(Succeed())
			Expect(count(ctx, st, "refresh_tokens")).To(BeZero())
		})
	})
})
