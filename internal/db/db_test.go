package db_test

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/waterworks/records/internal/db"
	"github.com/waterworks/records/internal/testutil"
)

var _ = Describe("Database", func() {
	var (
		ctx  context.Context
		conn *sqlx.DB
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		conn, err = testutil.NewSQLite(ctx)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(conn.Close)
	})

	Describe("Connect", func() {
		It("should require a DSN", func() {
			_, err := db.Connect(ctx, db.Options{Driver: db.DriverSQLite})
			Expect(err).To(MatchError(ContainSubstring("DSN is required")))
		})

		It("should reject unknown drivers", func() {
			_, err := db.Connect(ctx, db.Options{Driver: "mysql", DSN: "x"})
			Expect(err).To(MatchError(ContainSubstring("unsupported driver")))
		})

		It("should reject malformed postgres DSNs", func() {
			_, err := db.Connect(ctx, db.Options{Driver: db.DriverPostgres, DSN: "postgres://%zz"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Migrate", func() {
		It("should create every table", func() {
			var tables []string
			Expect(conn.SelectContext(ctx, &tables,
				`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)).To(Succeed())
			Expect(tables).To(ConsistOf(
				"alerts", "billing", "consumption_records", "conservation_methods",
				"implementation_records", "refresh_tokens", "users",
				"water_meters", "water_savings", "water_sources",
			))
		})

		It("should be safe to run again", func() {
			Expect(db.Migrate(ctx, conn)).To(Succeed())
		})
	})

	Describe("WithTx", func() {
		insertUser := func(tx *sqlx.Tx, email string) error {
			_, err := tx.ExecContext(ctx, `INSERT INTO users (name, email) VALUES ($1, $2)`, "Ana", email)
			return err
		}
		count := func() int {
			var n int
			Expect(conn.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)).To(Succeed())
			return n
		}

		It("should commit when fn succeeds", func() {
			Expect(db.WithTx(ctx, conn, func(tx *sqlx.Tx) error {
				return insertUser(tx, "ana@example.com")
			})).To(Succeed())
			Expect(count()).To(Equal(1))
		})

		It("should roll back when fn fails", func() {
			boom := errors.New("boom")
			err := db.WithTx(ctx, conn, func(tx *sqlx.Tx) error {
				Expect(insertUser(tx, "ana@example.com")).To(Succeed())
				return boom
			})
			Expect(err).To(MatchError(boom))
			Expect(count()).To(BeZero())
		})

		It("should roll back and re-panic when fn panics", func() {
			Expect(func() {
				_ = db.WithTx(ctx, conn, func(tx *sqlx.Tx) error {
					Expect(insertUser(tx, "ana@example.com")).To(Succeed())
					panic("boom")
				})
			}).To(PanicWith("boom"))
			Expect(count()).To(BeZero())
		})
	})
})
